package jobs

import (
	"context"
	"fmt"

	"ecoshare-backend/internal/logger"
)

// ActivateScheduledBanners flips SCHEDULED banners to ACTIVE once their start
// date has passed.
func (jr *JobRunner) ActivateScheduledBanners() {
	jr.runWithRecovery("ActivateScheduledBanners", func() {
		ctx := context.Background()

		count, err := jr.store.ActivateScheduled(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to activate scheduled banners", "error", err)
			return
		}

		logger.Info("Activated scheduled banners", "count", count)
	})
}

// CompleteExpiredBanners flips ACTIVE banners to COMPLETED once their end date
// has passed, taking them out of public rotation.
func (jr *JobRunner) CompleteExpiredBanners() {
	jr.runWithRecovery("CompleteExpiredBanners", func() {
		ctx := context.Background()

		count, err := jr.store.CompleteExpired(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to complete expired banners", "error", err)
			return
		}

		logger.Info("Completed expired banners", "count", count)
	})
}

// NotifyDraftBanners emails the admin about DRAFT banners whose start date has
// arrived. Drafts are never auto-published; an admin has to schedule them.
func (jr *JobRunner) NotifyDraftBanners() {
	jr.runWithRecovery("NotifyDraftBanners", func() {
		ctx := context.Background()

		banners, err := jr.store.ListDraftDue(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to list due draft banners", "error", err)
			return
		}

		if len(banners) == 0 {
			return
		}

		for _, b := range banners {
			message := fmt.Sprintf("Banner %q (id %d, sponsor %d) reached its start date but is still in DRAFT.", b.Title, b.ID, b.SponsorID)
			if err := jr.services.Email.SendAdminNotification(ctx, "Draft banner past start date", message); err != nil {
				logger.Error("Failed to send draft banner reminder", "banner_id", b.ID, "error", err)
			}
		}

		logger.Info("Sent draft banner reminders", "count", len(banners))
	})
}
