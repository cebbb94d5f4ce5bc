package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultStoreProbeSchedule runs the probe every fifteen seconds.
const DefaultStoreProbeSchedule = "*/15 * * * * *"

const storeProbeTimeout = 2 * time.Second

// Pinger checks connectivity to the store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ProbeRecorder receives the result of every probe run.
type ProbeRecorder interface {
	Record(err error, duration time.Duration)
}

// StoreGauge publishes store availability.
type StoreGauge interface {
	SetStoreUp(up bool)
}

// StoreProbeJob pings the store on a schedule and feeds the readiness probe
// and the store_up gauge.
type StoreProbeJob struct {
	pinger   Pinger
	recorder ProbeRecorder
	gauge    StoreGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	wasUp    bool
}

// NewStoreProbeJob creates the job. An empty schedule falls back to
// DefaultStoreProbeSchedule.
func NewStoreProbeJob(
	pinger Pinger,
	recorder ProbeRecorder,
	gauge StoreGauge,
	schedule string,
	logger *slog.Logger,
) *StoreProbeJob {
	if schedule == "" {
		schedule = DefaultStoreProbeSchedule
	}
	return &StoreProbeJob{
		pinger:   pinger,
		recorder: recorder,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "store_probe_job"),
		wasUp:    true,
	}
}

// Start probes once synchronously, then on every tick of the schedule.
func (j *StoreProbeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.probe(context.Background())
	})
	if err != nil {
		return err
	}

	j.probe(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Store probe job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running probe to finish.
func (j *StoreProbeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Store probe job stopped")
}

func (j *StoreProbeJob) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, storeProbeTimeout)
	defer cancel()

	start := time.Now()
	err := j.pinger.PingContext(ctx)
	j.recorder.Record(err, time.Since(start))
	j.gauge.SetStoreUp(err == nil)

	// Log transitions only; a flapping store is visible in the gauge.
	switch {
	case err != nil && j.wasUp:
		j.logger.ErrorContext(ctx, "Store is unreachable", "error", err)
	case err == nil && !j.wasUp:
		j.logger.InfoContext(ctx, "Store is reachable again")
	}
	j.wasUp = err == nil
}
