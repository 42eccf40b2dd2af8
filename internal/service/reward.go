package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/logger"
	"ecoshare-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type rewardService struct {
	voucherRepo repository.VoucherRepository
	sponsorRepo repository.SponsorRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	clock       clockwork.Clock
}

func NewRewardService(
	voucherRepo repository.VoucherRepository,
	sponsorRepo repository.SponsorRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	clock clockwork.Clock,
) RewardService {
	return &rewardService{
		voucherRepo: voucherRepo,
		sponsorRepo: sponsorRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		clock:       clock,
	}
}

// RedeemVoucher checks preconditions in a fixed order so the first failure
// wins, then lets the repository enforce capacity and uniqueness atomically.
// Points act as a gate here: the balance is checked, never deducted.
func (s *rewardService) RedeemVoucher(ctx context.Context, voucherID, userID int64) (*domain.VoucherRedemption, error) {
	v, err := s.voucherRepo.GetByID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("voucher %d: %w", voucherID, err)
	}
	if v.Status != domain.VoucherStatusActive {
		return nil, fmt.Errorf("voucher %s is %s: %w", v.Code, strings.ToLower(string(v.Status)), domain.ErrInvalidState)
	}
	if v.CurrentRedemptions >= v.MaxRedemptions {
		return nil, fmt.Errorf("voucher %s redemption limit reached: %w", v.Code, domain.ErrCapacityExceeded)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	if user.EcoPoints < v.MinEcoPoints {
		return nil, fmt.Errorf("voucher %s requires %d points, user has %d: %w",
			v.Code, v.MinEcoPoints, user.EcoPoints, domain.ErrInsufficientBalance)
	}

	redeemed, err := s.voucherRepo.HasRedeemed(ctx, voucherID, userID)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, fmt.Errorf("voucher %s already redeemed by user %d: %w", v.Code, userID, domain.ErrAlreadyProcessed)
	}

	red := &domain.VoucherRedemption{
		VoucherID:  voucherID,
		UserID:     userID,
		PointsCost: v.MinEcoPoints,
	}
	if err := s.voucherRepo.Redeem(ctx, red); err != nil {
		return nil, err
	}
	red.RedeemedOn = s.clock.Now()

	if err := s.emailSvc.SendVoucherRedemptionReceipt(ctx, user.Email, v.Title, v.Code); err != nil {
		logger.Warn("Failed to send redemption receipt", "voucher_id", voucherID, "user_id", userID, "error", err)
	}

	return red, nil
}

// RequestAdRedemption holds pointsCost immediately: the debit and the
// pending request are one store transaction.
func (s *rewardService) RequestAdRedemption(ctx context.Context, userID, pointsCost int64, durationMinutes int32, title, imageURL, targetURL string) (*domain.AdRedemptionRequest, error) {
	if pointsCost <= 0 {
		return nil, fmt.Errorf("points cost must be positive: %w", domain.ErrInvalidState)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive: %w", domain.ErrInvalidState)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	if user.EcoPoints < pointsCost {
		return nil, fmt.Errorf("ad redemption costs %d points, user has %d: %w",
			pointsCost, user.EcoPoints, domain.ErrInsufficientBalance)
	}

	req := &domain.AdRedemptionRequest{
		UserID:          userID,
		PointsCost:      pointsCost,
		DurationMinutes: durationMinutes,
		Title:           title,
		ImageURL:        imageURL,
		TargetURL:       targetURL,
	}
	if err := s.sponsorRepo.CreateRequestWithHold(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *rewardService) ApproveAdRedemption(ctx context.Context, adminID, requestID int64) (*domain.SponsorBanner, error) {
	req, err := s.sponsorRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("ad redemption request %d: %w", requestID, err)
	}
	if req.Status != domain.AdRequestStatusPending {
		return nil, fmt.Errorf("ad redemption request %d is %s: %w", requestID, req.Status, domain.ErrAlreadyProcessed)
	}

	now := s.clock.Now()
	end := now.Add(time.Duration(req.DurationMinutes) * time.Minute)
	banner := &domain.SponsorBanner{
		SponsorID: req.UserID,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Active:    true,
		Status:    domain.BannerStatusActive,
		StartDate: &now,
		EndDate:   &end,
	}
	if err := s.sponsorRepo.ApproveRequest(ctx, requestID, banner, now); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, req, "approved", "")
	return banner, nil
}

func (s *rewardService) RejectAdRedemption(ctx context.Context, adminID, requestID int64, reason string) error {
	req, err := s.sponsorRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("ad redemption request %d: %w", requestID, err)
	}
	if req.Status != domain.AdRequestStatusPending {
		return fmt.Errorf("ad redemption request %d is %s: %w", requestID, req.Status, domain.ErrAlreadyProcessed)
	}

	// The repository refunds exactly the held points in the same
	// transaction as the status flip.
	if err := s.sponsorRepo.RejectRequest(ctx, requestID, reason, s.clock.Now()); err != nil {
		return err
	}

	s.notifyDecision(ctx, req, "rejected", reason)
	return nil
}

func (s *rewardService) notifyDecision(ctx context.Context, req *domain.AdRedemptionRequest, decision, reason string) {
	msg := fmt.Sprintf("Your ad request %q was %s", req.Title, decision)
	if reason != "" {
		msg += ": " + reason
	}
	title := "Ad Request Approved"
	if decision == "rejected" {
		title = "Ad Request Rejected"
	}
	note := &domain.Notification{
		UserID:  req.UserID,
		Title:   title,
		Message: msg,
		Attributes: map[string]string{
			"type":       "AD_REQUEST_" + strings.ToUpper(decision),
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to store notification", "user_id", req.UserID, "error", err)
	}
	if user, err := s.userRepo.GetByID(ctx, req.UserID); err == nil {
		if err := s.emailSvc.SendAdRequestDecisionNotification(ctx, user.Email, req.Title, decision, reason); err != nil {
			logger.Warn("Failed to send decision email", "request_id", req.ID, "error", err)
		}
	}
}

func (s *rewardService) CreateVoucher(ctx context.Context, adminID int64, v *domain.Voucher) (*domain.Voucher, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("admin %d: %w", adminID, err)
	}
	if admin.Role != domain.UserRoleAdmin {
		return nil, fmt.Errorf("only admins may create vouchers: %w", domain.ErrUnauthorized)
	}
	if v.MaxRedemptions <= 0 {
		return nil, fmt.Errorf("max redemptions must be positive: %w", domain.ErrInvalidState)
	}
	if v.MinEcoPoints < 0 {
		return nil, fmt.Errorf("minimum points must be non-negative: %w", domain.ErrInvalidState)
	}

	if v.Code == "" {
		v.Code = strings.ToUpper(uuid.NewString()[:8])
	}
	v.Status = domain.VoucherStatusActive
	v.CreatedBy = adminID
	if err := s.voucherRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *rewardService) DeactivateVoucher(ctx context.Context, adminID, voucherID int64) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("admin %d: %w", adminID, err)
	}
	if admin.Role != domain.UserRoleAdmin {
		return fmt.Errorf("only admins may deactivate vouchers: %w", domain.ErrUnauthorized)
	}
	return s.voucherRepo.UpdateStatus(ctx, voucherID, domain.VoucherStatusInactive)
}

func (s *rewardService) ListVouchers(ctx context.Context, page, pageSize int32) ([]domain.Voucher, int32, error) {
	return s.voucherRepo.List(ctx, page, pageSize)
}

func (s *rewardService) ListVoucherRedemptions(ctx context.Context, voucherID int64) ([]domain.VoucherRedemption, error) {
	return s.voucherRepo.ListRedemptions(ctx, voucherID)
}

func (s *rewardService) ListPendingAdRequests(ctx context.Context, page, pageSize int32) ([]domain.AdRedemptionRequest, int32, error) {
	return s.sponsorRepo.ListRequests(ctx, domain.AdRequestStatusPending, page, pageSize)
}
