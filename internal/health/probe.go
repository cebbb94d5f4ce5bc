package health

import (
	"errors"
	"sync"
	"time"
)

var errNotProbed = errors.New("not probed yet")

// UnreachableMessage is reported for a failed probe. The cause is logged by
// whoever runs the probe and is kept out of health responses, which are public.
const UnreachableMessage = "unreachable"

// ProbeResult is a Checker backed by the latest result of a background probe.
// Serving a cached result keeps readiness requests off the store.
type ProbeResult struct {
	name string

	mu       sync.RWMutex
	err      error
	duration time.Duration
}

// NewProbeResult starts unhealthy until the first Record.
func NewProbeResult(name string) *ProbeResult {
	return &ProbeResult{name: name, err: errNotProbed}
}

// Record stores the outcome of one probe run. Only the fact that err is
// non-nil reaches Check.
func (p *ProbeResult) Record(err error, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	p.duration = duration
}

func (p *ProbeResult) Check() Check {
	p.mu.RLock()
	defer p.mu.RUnlock()

	check := Check{
		Name:       p.name,
		Status:     StatusHealthy,
		DurationMs: p.duration.Milliseconds(),
	}
	if p.err != nil {
		check.Status = StatusUnhealthy
		check.Message = UnreachableMessage
		if errors.Is(p.err, errNotProbed) {
			check.Message = errNotProbed.Error()
		}
	}
	return check
}

// SimpleChecker runs checkFn on every Check.
type SimpleChecker struct {
	name    string
	checkFn func() error
}

func NewSimpleChecker(name string, checkFn func() error) *SimpleChecker {
	return &SimpleChecker{
		name:    name,
		checkFn: checkFn,
	}
}

func (c *SimpleChecker) Check() Check {
	start := time.Now()
	err := c.checkFn()
	duration := time.Since(start)

	if err != nil {
		return Check{
			Name:       c.name,
			Status:     StatusUnhealthy,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}

	return Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}
