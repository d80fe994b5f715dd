package jobs

import (
	"context"
	"time"

	"lendloop-backend/internal/logger"
)

// ExpireStalePendingBookings rejects pending bookings whose start date has
// passed without the owner responding. The engine refunds each borrower and
// frees the item, one transaction per booking, so a single failure does not
// stall the whole sweep.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("expire-stale-pending-bookings", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		expired, err := jr.services.Booking.ExpireStalePending(ctx)
		if err != nil {
			logger.Error("Failed to expire stale pending bookings", "error", err, "expired", expired)
			return
		}
		logger.Info("Expired stale pending bookings", "expired", expired)
	})
}
