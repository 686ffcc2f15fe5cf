package jobs

import (
	"context"
	"fmt"
	"time"

	"equipment-tracker/internal/config"
	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"
	"equipment-tracker/internal/metrics"
	"equipment-tracker/internal/service"
)

// Job names as used by the -run-once flag and the job metrics.
const (
	JobReportDueReturns     = "report-due-returns"
	JobReportUpcomingStarts = "report-upcoming-starts"
	JobRecordFleetStatus    = "record-fleet-status"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	fleet   service.FleetService
	metrics *metrics.Metrics
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies. A nil m
// disables metric recording.
func NewJobRunner(fleet service.FleetService, m *metrics.Metrics, cfg *config.Config) *JobRunner {
	return &JobRunner{
		fleet:   fleet,
		metrics: m,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// today is the current UTC calendar date; schedules run in UTC.
func (jr *JobRunner) today() domain.Date {
	return domain.DateOf(jr.now().UTC())
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
		if jr.metrics != nil {
			jr.metrics.JobRan(jobName, err)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	start := time.Now()
	err = jobFunc(context.Background())
	if err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.RecordFleetStatus()
	jr.ReportDueReturns()
	jr.ReportUpcomingStarts()
}

// Run runs the named job once. It reports false for an unknown name.
func (jr *JobRunner) Run(name string) bool {
	switch name {
	case JobReportDueReturns:
		jr.ReportDueReturns()
	case JobReportUpcomingStarts:
		jr.ReportUpcomingStarts()
	case JobRecordFleetStatus:
		jr.RecordFleetStatus()
	case "all":
		jr.RunAll()
	default:
		return false
	}
	return true
}
