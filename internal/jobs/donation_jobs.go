package jobs

import (
	"context"
	"math"

	"ecoshare-backend/internal/logger"
)

// ExpireDonations marks donations as EXPIRED if they are still AVAILABLE past
// their expiry timestamp. The update is keyed on the current status, so a
// donation claimed between sweeps is never touched.
func (jr *JobRunner) ExpireDonations() {
	jr.runWithRecovery("ExpireDonations", func() {
		ctx := context.Background()

		count, err := jr.store.ExpireAvailable(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to expire donations", "error", err)
			return
		}

		logger.Info("Expired stale donations", "count", count)
	})
}

// RetryUnawardedPoints re-credits completed donations whose award transaction
// failed after the confirmation committed. The points_awarded flag inside
// AwardCompletionPoints keeps a concurrent confirmation and the sweep from
// crediting twice.
func (jr *JobRunner) RetryUnawardedPoints() {
	jr.runWithRecovery("RetryUnawardedPoints", func() {
		ctx := context.Background()

		donations, err := jr.store.ListUnawardedCompleted(ctx)
		if err != nil {
			logger.Error("Failed to list unawarded donations", "error", err)
			return
		}

		for _, d := range donations {
			if d.ClaimedByID == nil {
				logger.Error("Completed donation has no claimant", "donation_id", d.ID)
				continue
			}
			points := int64(math.Round(d.WeightKg * float64(jr.config.Rewards.PointsPerKg)))
			if points <= 0 {
				continue
			}
			awarded, err := jr.store.AwardCompletionPoints(ctx, d.ID, d.DonorID, *d.ClaimedByID, points)
			if err != nil {
				logger.Error("Failed to retry point award", "donation_id", d.ID, "error", err)
				continue
			}
			if awarded {
				logger.Info("Recovered completion points", "donation_id", d.ID, "points", points)
			}
		}
	})
}
