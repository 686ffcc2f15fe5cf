package jobs

import (
	"context"

	"equipment-tracker/internal/logger"
)

// ReportDueReturns logs every ON RENT unit whose end date is today or earlier
func (jr *JobRunner) ReportDueReturns() {
	jr.runWithRecovery(JobReportDueReturns, func(ctx context.Context) error {
		today := jr.today()
		due, err := jr.fleet.DueReturns(ctx, today)
		if err != nil {
			return err
		}

		overdue := 0
		for _, e := range due {
			if e.EndDate.Before(today) {
				overdue++
			}
			logger.Debug("Equipment due back",
				"equipment_id", e.ID,
				"code", e.Code,
				"customer", e.Customer,
				"end_date", e.EndDate.String())
		}

		logger.Info("Due returns", "date", today.String(), "count", len(due), "overdue", overdue)
		return nil
	})
}

// ReportUpcomingStarts logs RESERVE units whose rental starts within the configured window
func (jr *JobRunner) ReportUpcomingStarts() {
	jr.runWithRecovery(JobReportUpcomingStarts, func(ctx context.Context) error {
		today := jr.today()
		window := jr.config.Scheduler.UpcomingStartWindowDays
		upcoming, err := jr.fleet.UpcomingStarts(ctx, today, window)
		if err != nil {
			return err
		}

		for _, e := range upcoming {
			logger.Debug("Reservation starting",
				"equipment_id", e.ID,
				"code", e.Code,
				"customer", e.Customer,
				"start_date", e.StartDate.String())
		}

		logger.Info("Upcoming starts", "date", today.String(), "window_days", window, "count", len(upcoming))
		return nil
	})
}
