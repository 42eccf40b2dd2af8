package service

import (
	"context"
	"fmt"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/logger"
	"ecoshare-backend/internal/payment"
	"ecoshare-backend/internal/repository"

	"github.com/jonboulle/clockwork"
)

// pointsPer100PKR is the EcoPoints credit for money donations: 10 points per
// full 100 rupees donated. Amounts are in paisa.
const pointsPer100PKR = 10

type fundService struct {
	fundRepo repository.FundRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	verifier payment.Verifier
	clock    clockwork.Clock
}

func NewFundService(
	fundRepo repository.FundRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	verifier payment.Verifier,
	clock clockwork.Clock,
) FundService {
	return &fundService{
		fundRepo: fundRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		verifier: verifier,
		clock:    clock,
	}
}

// MoneyRewardPoints converts a donated amount in paisa to its EcoPoints
// credit: floor(amount / 100 PKR) * 10.
func MoneyRewardPoints(amountCents int64) int64 {
	return amountCents / 10000 * pointsPer100PKR
}

func (s *fundService) RecordMoneyDonation(ctx context.Context, userID, amountCents int64, paymentReference string) (*domain.MoneyDonation, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("donation amount must be positive: %w", domain.ErrInvalidState)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	if user.Role != domain.UserRoleIndividual {
		return nil, fmt.Errorf("only individual accounts may donate money: %w", domain.ErrUnauthorized)
	}

	verified, err := s.verifier.Verify(ctx, paymentReference, amountCents)
	if err != nil {
		return nil, fmt.Errorf("payment verification: %w", err)
	}
	if !verified {
		return nil, fmt.Errorf("payment %s not verified: %w", paymentReference, domain.ErrInvalidState)
	}

	md := &domain.MoneyDonation{
		UserID:           userID,
		AmountCents:      amountCents,
		PaymentReference: paymentReference,
	}
	if err := s.fundRepo.RecordDonation(ctx, md, MoneyRewardPoints(amountCents)); err != nil {
		return nil, err
	}

	note := &domain.Notification{
		UserID:  userID,
		Title:   "Thank You For Donating",
		Message: fmt.Sprintf("Your donation of PKR %.2f was recorded", float64(amountCents)/100),
		Attributes: map[string]string{
			"type":        "MONEY_DONATION",
			"donation_id": fmt.Sprintf("%d", md.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to store donation notification", "user_id", userID, "error", err)
	}

	return md, nil
}

func (s *fundService) CreateMoneyRequest(ctx context.Context, requesterID, amountCents int64, purpose string) (*domain.MoneyRequest, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("request amount must be positive: %w", domain.ErrInvalidState)
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("requester %d: %w", requesterID, err)
	}
	switch requester.Role {
	case domain.UserRoleNGO, domain.UserRoleShelter:
	default:
		return nil, fmt.Errorf("role %s may not request funds: %w", requester.Role, domain.ErrUnauthorized)
	}

	req := &domain.MoneyRequest{
		RequesterID: requesterID,
		AmountCents: amountCents,
		Purpose:     purpose,
	}
	if err := s.fundRepo.CreateMoneyRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *fundService) ApproveMoneyRequest(ctx context.Context, adminID, requestID int64) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	req, err := s.fundRepo.GetMoneyRequestByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("money request %d: %w", requestID, err)
	}
	if req.Status != domain.MoneyRequestStatusPending {
		return fmt.Errorf("money request %d is %s: %w", requestID, req.Status, domain.ErrAlreadyProcessed)
	}

	if err := s.fundRepo.ApproveMoneyRequest(ctx, requestID, adminID, s.clock.Now()); err != nil {
		return err
	}

	s.notifyDecision(ctx, req, "approved", "")
	return nil
}

func (s *fundService) RejectMoneyRequest(ctx context.Context, adminID, requestID int64, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	req, err := s.fundRepo.GetMoneyRequestByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("money request %d: %w", requestID, err)
	}
	if req.Status != domain.MoneyRequestStatusPending {
		return fmt.Errorf("money request %d is %s: %w", requestID, req.Status, domain.ErrAlreadyProcessed)
	}

	if err := s.fundRepo.RejectMoneyRequest(ctx, requestID, adminID, reason, s.clock.Now()); err != nil {
		return err
	}

	s.notifyDecision(ctx, req, "rejected", reason)
	return nil
}

func (s *fundService) notifyDecision(ctx context.Context, req *domain.MoneyRequest, decision, reason string) {
	title := "Money Request Approved"
	if decision == "rejected" {
		title = "Money Request Rejected"
	}
	msg := fmt.Sprintf("Your money request for PKR %.2f was %s", float64(req.AmountCents)/100, decision)
	if reason != "" {
		msg += ": " + reason
	}
	note := &domain.Notification{
		UserID:  req.RequesterID,
		Title:   title,
		Message: msg,
		Attributes: map[string]string{
			"type":       "MONEY_REQUEST_DECISION",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to store notification", "user_id", req.RequesterID, "error", err)
	}
	if requester, err := s.userRepo.GetByID(ctx, req.RequesterID); err == nil {
		if err := s.emailSvc.SendMoneyRequestDecisionNotification(ctx, requester.Email, decision, reason, req.AmountCents); err != nil {
			logger.Warn("Failed to send decision email", "request_id", req.ID, "error", err)
		}
	}
}

func (s *fundService) requireAdmin(ctx context.Context, adminID int64) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("admin %d: %w", adminID, err)
	}
	if admin.Role != domain.UserRoleAdmin {
		return fmt.Errorf("only admins may review money requests: %w", domain.ErrUnauthorized)
	}
	return nil
}

func (s *fundService) GetFundBalance(ctx context.Context) (*domain.FundBalance, error) {
	return s.fundRepo.GetFundBalance(ctx)
}

func (s *fundService) ListTransactions(ctx context.Context, page, pageSize int32) ([]domain.FinancialTransaction, int32, error) {
	return s.fundRepo.ListTransactions(ctx, page, pageSize)
}

func (s *fundService) ListPendingMoneyRequests(ctx context.Context, page, pageSize int32) ([]domain.MoneyRequest, int32, error) {
	return s.fundRepo.ListMoneyRequests(ctx, domain.MoneyRequestStatusPending, page, pageSize)
}
