package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/internal/adapters/out/security"
	"storefront/internal/core/domain/model/account"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type handlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f handlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

type lookupFunc[In, Out any] func(ctx context.Context, in In) (Out, bool, error)

func (f lookupFunc[In, Out]) Handle(ctx context.Context, in In) (Out, bool, error) {
	return f(ctx, in)
}

type fakeRecorder struct {
	mu       sync.Mutex
	events   []string
	requests int
}

func (r *fakeRecorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *fakeRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *fakeRecorder) RecordOrderCreated()             { r.add("order_created") }
func (r *fakeRecorder) RecordStatusChange(s string)     { r.add("status:" + s) }
func (r *fakeRecorder) RecordOrderDeleted()             { r.add("order_deleted") }
func (r *fakeRecorder) RecordLineItemAdded()            { r.add("line_item_added") }
func (r *fakeRecorder) RecordLineItemRejected(s string) { r.add("line_item_rejected:" + s) }
func (r *fakeRecorder) RecordTokenRejected()            { r.add("token_rejected") }
func (r *fakeRecorder) RecordAuthAttempt(ok bool) {
	if ok {
		r.add("auth_success")
		return
	}
	r.add("auth_failure")
}

func (r *fakeRecorder) RecordRequest(string, string, int, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var alice = account.Snapshot{ID: 1, Username: "alice", FirstName: "Alice", LastName: "Liddell"}

type testAPI struct {
	echo      *echo.Echo
	tokens    *security.TokenAuthority
	recorder  *fakeRecorder
	aliceAuth string
}

func newTestAPI(t *testing.T, handlers Handlers) *testAPI {
	t.Helper()

	tokens := security.NewTokenAuthority(security.Config{TokenSecret: "test-secret", Issuer: "storefront"})
	token, err := tokens.Issue(alice)
	require.NoError(t, err)

	recorder := &fakeRecorder{}
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(false, discardLogger())
	e.Use(RequestMetrics(recorder))

	server := NewServer(handlers, tokens, recorder, discardLogger())
	server.RegisterRoutes(e, BearerAuth(tokens, recorder, discardLogger()), LoginRateLimiter(100, 100))

	return &testAPI{echo: e, tokens: tokens, recorder: recorder, aliceAuth: "Bearer " + token}
}

func (a *testAPI) do(method, path, body, authorization string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, "", a.aliceAuth)
}
