package service

import (
	"context"
	"fmt"
	"math"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/logger"
	"ecoshare-backend/internal/repository"
	"ecoshare-backend/internal/utils"

	"github.com/jonboulle/clockwork"
)

type donationService struct {
	donationRepo   repository.DonationRepository
	userRepo       repository.UserRepository
	noteRepo       repository.NotificationRepository
	emailSvc       EmailService
	clock          clockwork.Clock
	pointsPerKg    int64
	ratePerKmCents int64
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	clock clockwork.Clock,
	pointsPerKg int64,
	ratePerKmCents int64,
) DonationService {
	return &donationService{
		donationRepo:   donationRepo,
		userRepo:       userRepo,
		noteRepo:       noteRepo,
		emailSvc:       emailSvc,
		clock:          clock,
		pointsPerKg:    pointsPerKg,
		ratePerKmCents: ratePerKmCents,
	}
}

func (s *donationService) PostDonation(ctx context.Context, donorID int64, d *domain.Donation) (*domain.Donation, error) {
	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("donor %d: %w", donorID, err)
	}
	if d.WeightKg <= 0 {
		return nil, fmt.Errorf("donation weight must be positive: %w", domain.ErrInvalidState)
	}
	if !d.Expiry.After(s.clock.Now()) {
		return nil, fmt.Errorf("donation expiry must be in the future: %w", domain.ErrInvalidState)
	}

	d.DonorID = donor.ID
	d.Status = domain.DonationStatusAvailable
	d.SenderConfirmed = false
	d.ReceiverConfirmed = false
	if d.PickupLat == 0 && d.PickupLng == 0 {
		d.PickupLat = donor.Latitude
		d.PickupLng = donor.Longitude
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *donationService) ClaimDonation(ctx context.Context, donationID, claimantID int64) (*domain.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("donation %d: %w", donationID, err)
	}
	claimant, err := s.userRepo.GetByID(ctx, claimantID)
	if err != nil {
		return nil, fmt.Errorf("claimant %d: %w", claimantID, err)
	}

	now := s.clock.Now()
	if claimant.ID == d.DonorID {
		return nil, fmt.Errorf("donor cannot claim own donation: %w", domain.ErrInvalidState)
	}
	if d.EffectiveStatus(now) != domain.DonationStatusAvailable {
		return nil, fmt.Errorf("donation %d is %s: %w", donationID, d.EffectiveStatus(now), domain.ErrInvalidState)
	}

	cost := utils.EstimateTransportCostCents(d.PickupLat, d.PickupLng, claimant.Latitude, claimant.Longitude, s.ratePerKmCents)

	// The repository re-checks the status and expiry atomically; a lost
	// race against another claimant surfaces here as ErrInvalidState.
	if err := s.donationRepo.Claim(ctx, donationID, claimantID, cost, now); err != nil {
		return nil, err
	}

	s.notify(ctx, d.DonorID, "Donation Claimed",
		fmt.Sprintf("%s claimed your donation %q", claimant.Name, d.Title),
		map[string]string{"type": "DONATION_CLAIMED", "donation_id": fmt.Sprintf("%d", d.ID)})
	if donor, err := s.userRepo.GetByID(ctx, d.DonorID); err == nil {
		if err := s.emailSvc.SendDonationClaimedNotification(ctx, donor.Email, claimant.Name, d.Title); err != nil {
			logger.Warn("Failed to send claim email", "donation_id", d.ID, "error", err)
		}
	}

	return s.donationRepo.GetByID(ctx, donationID)
}

func (s *donationService) ConfirmSent(ctx context.Context, donationID, actorID int64) (*domain.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("donation %d: %w", donationID, err)
	}
	if d.DonorID != actorID {
		return nil, fmt.Errorf("only the donor may confirm sending: %w", domain.ErrUnauthorized)
	}
	if d.SenderConfirmed {
		return nil, fmt.Errorf("sender already confirmed donation %d: %w", donationID, domain.ErrAlreadyProcessed)
	}
	if d.Status != domain.DonationStatusClaimed && d.Status != domain.DonationStatusDelivered {
		return nil, fmt.Errorf("donation %d is %s, not awaiting dispatch: %w", donationID, d.Status, domain.ErrInvalidState)
	}

	newStatus, err := s.donationRepo.ConfirmSent(ctx, donationID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if newStatus == domain.DonationStatusCompleted {
		if err := s.awardCompletionPoints(ctx, d); err != nil {
			return nil, fmt.Errorf("award points for donation %d: %w", d.ID, err)
		}
	}

	if d.ClaimedByID != nil {
		s.notify(ctx, *d.ClaimedByID, "Donation On The Way",
			fmt.Sprintf("The donor marked %q as sent", d.Title),
			map[string]string{"type": "DONATION_SENT", "donation_id": fmt.Sprintf("%d", d.ID)})
		if claimant, err := s.userRepo.GetByID(ctx, *d.ClaimedByID); err == nil {
			if donor, err := s.userRepo.GetByID(ctx, d.DonorID); err == nil {
				if err := s.emailSvc.SendDonationSentNotification(ctx, claimant.Email, donor.Name, d.Title); err != nil {
					logger.Warn("Failed to send dispatch email", "donation_id", d.ID, "error", err)
				}
			}
		}
	}

	return s.donationRepo.GetByID(ctx, donationID)
}

func (s *donationService) ConfirmReceived(ctx context.Context, donationID, actorID int64) (*domain.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("donation %d: %w", donationID, err)
	}
	if d.ClaimedByID == nil || *d.ClaimedByID != actorID {
		return nil, fmt.Errorf("only the claimant may confirm receipt: %w", domain.ErrUnauthorized)
	}
	if !d.SenderConfirmed {
		return nil, fmt.Errorf("cannot mark as received until donor confirms: %w", domain.ErrInvalidState)
	}
	if d.ReceiverConfirmed {
		return nil, fmt.Errorf("receiver already confirmed donation %d: %w", donationID, domain.ErrAlreadyProcessed)
	}

	if err := s.donationRepo.ConfirmReceived(ctx, donationID, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.awardCompletionPoints(ctx, d); err != nil {
		return nil, fmt.Errorf("award points for donation %d: %w", d.ID, err)
	}

	return s.donationRepo.GetByID(ctx, donationID)
}

// awardCompletionPoints credits both parties proportional to donated weight.
// The repository flips points_awarded under the same transaction, so a
// re-entered completion never credits twice. A failed credit is surfaced to
// the caller; the retry sweep picks up any completed donation whose flag is
// still unset, so the credit is never lost.
func (s *donationService) awardCompletionPoints(ctx context.Context, d *domain.Donation) error {
	if d.ClaimedByID == nil {
		return fmt.Errorf("completed donation %d has no claimant: %w", d.ID, domain.ErrInvalidState)
	}
	points := int64(math.Round(d.WeightKg * float64(s.pointsPerKg)))
	if points <= 0 {
		return nil
	}

	awarded, err := s.donationRepo.AwardCompletionPoints(ctx, d.ID, d.DonorID, *d.ClaimedByID, points)
	if err != nil {
		return err
	}
	if !awarded {
		return nil
	}

	for _, userID := range []int64{d.DonorID, *d.ClaimedByID} {
		s.notify(ctx, userID, "Donation Completed",
			fmt.Sprintf("Donation %q completed, you earned %d EcoPoints", d.Title, points),
			map[string]string{"type": "DONATION_COMPLETED", "donation_id": fmt.Sprintf("%d", d.ID)})
		if u, err := s.userRepo.GetByID(ctx, userID); err == nil {
			if err := s.emailSvc.SendDonationCompletedNotification(ctx, u.Email, d.Title, points); err != nil {
				logger.Warn("Failed to send completion email", "donation_id", d.ID, "user_id", userID, "error", err)
			}
		}
	}
	return nil
}

func (s *donationService) GetDonation(ctx context.Context, donationID int64) (*domain.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	// Expired-by-time reads as Expired even before the sweep persists it.
	d.Status = d.EffectiveStatus(s.clock.Now())
	return d, nil
}

func (s *donationService) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Donation, int32, error) {
	return s.donationRepo.ListAvailable(ctx, s.clock.Now(), page, pageSize)
}

func (s *donationService) ListMyDonations(ctx context.Context, donorID int64, page, pageSize int32) ([]domain.Donation, int32, error) {
	return s.donationRepo.ListByDonor(ctx, donorID, page, pageSize)
}

func (s *donationService) ListMyClaims(ctx context.Context, claimantID int64, page, pageSize int32) ([]domain.Donation, int32, error) {
	return s.donationRepo.ListByClaimant(ctx, claimantID, page, pageSize)
}

func (s *donationService) EstimateTransportCost(ctx context.Context, donationID, claimantID int64) (int64, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return 0, err
	}
	claimant, err := s.userRepo.GetByID(ctx, claimantID)
	if err != nil {
		return 0, err
	}
	return utils.EstimateTransportCostCents(d.PickupLat, d.PickupLng, claimant.Latitude, claimant.Longitude, s.ratePerKmCents), nil
}

// notify stores an in-app notification; failures are logged and swallowed so
// they never fail the ledger mutation that triggered them.
func (s *donationService) notify(ctx context.Context, userID int64, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to store notification", "user_id", userID, "title", title, "error", err)
	}
}
