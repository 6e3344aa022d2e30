package jobs

import (
	"context"

	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/metrics"
)

// ReconcileAvailability re-derives every machinery availability flag from the
// set of active bookings. A flag can drift when a rejection or a crashed
// request leaves it out of step with the booking table; this job converges
// the two on a fixed cadence.
func (jr *JobRunner) ReconcileAvailability() {
	jr.runWithRecovery("ReconcileAvailability", func() {
		ctx := context.Background()

		corrected, err := jr.store.MachineryRepository.ReconcileAvailability(ctx)
		if err != nil {
			logger.Error("Failed to reconcile machinery availability", "error", err)
			return
		}

		metrics.AddReconciled(corrected)
		if corrected > 0 {
			logger.Info("Reconciled machinery availability", "corrected", corrected)
		} else {
			logger.Debug("Machinery availability already consistent")
		}
	})
}
