package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/service"
)

func newRewardFixture(t *testing.T) (*MockVoucherRepo, *MockSponsorRepo, *MockUserRepo, *MockNotificationRepo, *MockEmailService, *clockwork.FakeClock, service.RewardService) {
	t.Helper()
	voucherRepo := new(MockVoucherRepo)
	sponsorRepo := new(MockSponsorRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	svc := service.NewRewardService(voucherRepo, sponsorRepo, userRepo, noteRepo, emailSvc, clock)
	return voucherRepo, sponsorRepo, userRepo, noteRepo, emailSvc, clock, svc
}

func TestRewardService_RedeemVoucher(t *testing.T) {
	ctx := context.Background()
	voucher := &domain.Voucher{
		ID: 7, Code: "SAVE10", Title: "10% Off",
		MinEcoPoints: 500, MaxRedemptions: 100, CurrentRedemptions: 3,
		Status: domain.VoucherStatusActive,
	}

	t.Run("Success Does Not Deduct Points", func(t *testing.T) {
		voucherRepo, _, userRepo, _, emailSvc, _, svc := newRewardFixture(t)
		voucherRepo.On("GetByID", ctx, int64(7)).Return(voucher, nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2, Email: "user@test.com", EcoPoints: 800}, nil)
		voucherRepo.On("HasRedeemed", ctx, int64(7), int64(2)).Return(false, nil)
		voucherRepo.On("Redeem", ctx, mock.AnythingOfType("*domain.VoucherRedemption")).Return(nil)
		emailSvc.On("SendVoucherRedemptionReceipt", ctx, "user@test.com", "10% Off", "SAVE10").Return(nil)

		red, err := svc.RedeemVoucher(ctx, 7, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), red.VoucherID)
		// the threshold gates eligibility, the balance is never debited
		userRepo.AssertNotCalled(t, "DebitPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		voucherRepo, _, userRepo, _, _, _, svc := newRewardFixture(t)
		voucherRepo.On("GetByID", ctx, int64(7)).Return(voucher, nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2, EcoPoints: 300}, nil)

		_, err := svc.RedeemVoucher(ctx, 7, 2)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		voucherRepo.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
	})

	t.Run("Inactive Voucher", func(t *testing.T) {
		voucherRepo, _, _, _, _, _, svc := newRewardFixture(t)
		inactive := &domain.Voucher{ID: 8, Code: "OLD", Status: domain.VoucherStatusInactive, MaxRedemptions: 10}
		voucherRepo.On("GetByID", ctx, int64(8)).Return(inactive, nil)

		_, err := svc.RedeemVoucher(ctx, 8, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Capacity Exhausted", func(t *testing.T) {
		voucherRepo, _, _, _, _, _, svc := newRewardFixture(t)
		full := &domain.Voucher{ID: 9, Code: "FULL", Status: domain.VoucherStatusActive, MaxRedemptions: 5, CurrentRedemptions: 5}
		voucherRepo.On("GetByID", ctx, int64(9)).Return(full, nil)

		_, err := svc.RedeemVoucher(ctx, 9, 2)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	})

	t.Run("Repeat Redemption", func(t *testing.T) {
		voucherRepo, _, userRepo, _, _, _, svc := newRewardFixture(t)
		voucherRepo.On("GetByID", ctx, int64(7)).Return(voucher, nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2, EcoPoints: 800}, nil)
		voucherRepo.On("HasRedeemed", ctx, int64(7), int64(2)).Return(true, nil)

		_, err := svc.RedeemVoucher(ctx, 7, 2)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})
}

func TestRewardService_AdRedemption(t *testing.T) {
	ctx := context.Background()

	t.Run("Request Holds Points", func(t *testing.T) {
		_, sponsorRepo, userRepo, _, _, _, svc := newRewardFixture(t)
		userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, EcoPoints: 1500}, nil)
		sponsorRepo.On("CreateRequestWithHold", ctx, mock.AnythingOfType("*domain.AdRedemptionRequest")).Return(nil)

		req, err := svc.RequestAdRedemption(ctx, 3, 1000, 60, "Eat Green", "https://img", "https://target")
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), req.PointsCost)
		sponsorRepo.AssertCalled(t, "CreateRequestWithHold", ctx, mock.AnythingOfType("*domain.AdRedemptionRequest"))
	})

	t.Run("Request With Insufficient Points", func(t *testing.T) {
		_, sponsorRepo, userRepo, _, _, _, svc := newRewardFixture(t)
		userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, EcoPoints: 400}, nil)

		_, err := svc.RequestAdRedemption(ctx, 3, 1000, 60, "Eat Green", "", "")
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		sponsorRepo.AssertNotCalled(t, "CreateRequestWithHold", mock.Anything, mock.Anything)
	})

	t.Run("Approve Builds Active Banner From Request", func(t *testing.T) {
		_, sponsorRepo, userRepo, noteRepo, emailSvc, clock, svc := newRewardFixture(t)
		req := &domain.AdRedemptionRequest{
			ID: 11, UserID: 3, PointsCost: 1000, DurationMinutes: 60,
			Title: "Eat Green", ImageURL: "https://img", TargetURL: "https://target",
			Status: domain.AdRequestStatusPending,
		}
		sponsorRepo.On("GetRequestByID", ctx, int64(11)).Return(req, nil)
		sponsorRepo.On("ApproveRequest", ctx, int64(11), mock.AnythingOfType("*domain.SponsorBanner"), clock.Now()).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "sponsor@test.com"}, nil)
		emailSvc.On("SendAdRequestDecisionNotification", ctx, "sponsor@test.com", "Eat Green", "approved", "").Return(nil)

		banner, err := svc.ApproveAdRedemption(ctx, 99, 11)
		assert.NoError(t, err)
		assert.Equal(t, domain.BannerStatusActive, banner.Status)
		assert.True(t, banner.Active)
		assert.Equal(t, clock.Now(), *banner.StartDate)
		assert.Equal(t, clock.Now().Add(time.Hour), *banner.EndDate)
	})

	t.Run("Reject Refunds The Hold", func(t *testing.T) {
		_, sponsorRepo, userRepo, noteRepo, emailSvc, clock, svc := newRewardFixture(t)
		req := &domain.AdRedemptionRequest{
			ID: 12, UserID: 3, PointsCost: 1000, DurationMinutes: 60,
			Title: "Eat Green", Status: domain.AdRequestStatusPending,
		}
		sponsorRepo.On("GetRequestByID", ctx, int64(12)).Return(req, nil)
		sponsorRepo.On("RejectRequest", ctx, int64(12), "off brand", clock.Now()).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Email: "sponsor@test.com"}, nil)
		emailSvc.On("SendAdRequestDecisionNotification", ctx, "sponsor@test.com", "Eat Green", "rejected", "off brand").Return(nil)

		err := svc.RejectAdRedemption(ctx, 99, 12, "off brand")
		assert.NoError(t, err)
		sponsorRepo.AssertCalled(t, "RejectRequest", ctx, int64(12), "off brand", clock.Now())
	})

	t.Run("Decide Twice", func(t *testing.T) {
		_, sponsorRepo, _, _, _, _, svc := newRewardFixture(t)
		req := &domain.AdRedemptionRequest{ID: 13, UserID: 3, Status: domain.AdRequestStatusApproved}
		sponsorRepo.On("GetRequestByID", ctx, int64(13)).Return(req, nil)

		_, err := svc.ApproveAdRedemption(ctx, 99, 13)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

		err = svc.RejectAdRedemption(ctx, 99, 13, "late")
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})
}

func TestRewardService_CreateVoucher(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Only", func(t *testing.T) {
		_, _, userRepo, _, _, _, svc := newRewardFixture(t)
		userRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2, Role: domain.UserRoleIndividual}, nil)

		_, err := svc.CreateVoucher(ctx, 2, &domain.Voucher{MaxRedemptions: 10})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Generates Code", func(t *testing.T) {
		voucherRepo, _, userRepo, _, _, _, svc := newRewardFixture(t)
		userRepo.On("GetByID", ctx, int64(99)).Return(&domain.User{ID: 99, Role: domain.UserRoleAdmin}, nil)
		voucherRepo.On("Create", ctx, mock.AnythingOfType("*domain.Voucher")).Return(nil)

		v, err := svc.CreateVoucher(ctx, 99, &domain.Voucher{Title: "Free Coffee", MaxRedemptions: 50})
		assert.NoError(t, err)
		assert.Len(t, v.Code, 8)
		assert.Equal(t, domain.VoucherStatusActive, v.Status)
		assert.Equal(t, int64(99), v.CreatedBy)
	})
}
