package jobs

import (
	"context"

	"equipment-tracker/internal/logger"
)

// RecordFleetStatus refreshes the per-status unit gauges
func (jr *JobRunner) RecordFleetStatus() {
	jr.runWithRecovery(JobRecordFleetStatus, func(ctx context.Context) error {
		counts, err := jr.fleet.StatusCounts(ctx)
		if err != nil {
			return err
		}
		if jr.metrics != nil {
			jr.metrics.SetFleet(counts)
		}

		total := 0
		for _, n := range counts {
			total += n
		}
		logger.Info("Fleet status recorded", "units", total)
		return nil
	})
}
