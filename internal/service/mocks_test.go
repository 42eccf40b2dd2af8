package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ecoshare-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) CreditPoints(ctx context.Context, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	args := m.Called(ctx, userID, amount, txType, relatedID, description)
	return args.Error(0)
}
func (m *MockUserRepo) DebitPoints(ctx context.Context, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	args := m.Called(ctx, userID, amount, txType, relatedID, description)
	return args.Error(0)
}
func (m *MockUserRepo) ListPointTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.PointTransaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.PointTransaction), args.Get(1).(int32), args.Error(2)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDonationRepo) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) Claim(ctx context.Context, donationID, claimantID, transportCostCents int64, now time.Time) error {
	args := m.Called(ctx, donationID, claimantID, transportCostCents, now)
	return args.Error(0)
}
func (m *MockDonationRepo) ConfirmSent(ctx context.Context, donationID int64, now time.Time) (domain.DonationStatus, error) {
	args := m.Called(ctx, donationID, now)
	return args.Get(0).(domain.DonationStatus), args.Error(1)
}
func (m *MockDonationRepo) ConfirmReceived(ctx context.Context, donationID int64, now time.Time) error {
	args := m.Called(ctx, donationID, now)
	return args.Error(0)
}
func (m *MockDonationRepo) AwardCompletionPoints(ctx context.Context, donationID, donorID, claimantID, points int64) (bool, error) {
	args := m.Called(ctx, donationID, donorID, claimantID, points)
	return args.Bool(0), args.Error(1)
}
func (m *MockDonationRepo) ExpireAvailable(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDonationRepo) ListUnawardedCompleted(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) ListAvailable(ctx context.Context, now time.Time, page, pageSize int32) ([]domain.Donation, int32, error) {
	args := m.Called(ctx, now, page, pageSize)
	return args.Get(0).([]domain.Donation), args.Get(1).(int32), args.Error(2)
}
func (m *MockDonationRepo) ListByDonor(ctx context.Context, donorID int64, page, pageSize int32) ([]domain.Donation, int32, error) {
	args := m.Called(ctx, donorID, page, pageSize)
	return args.Get(0).([]domain.Donation), args.Get(1).(int32), args.Error(2)
}
func (m *MockDonationRepo) ListByClaimant(ctx context.Context, claimantID int64, page, pageSize int32) ([]domain.Donation, int32, error) {
	args := m.Called(ctx, claimantID, page, pageSize)
	return args.Get(0).([]domain.Donation), args.Get(1).(int32), args.Error(2)
}

// MockVoucherRepo
type MockVoucherRepo struct {
	mock.Mock
}

func (m *MockVoucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVoucherRepo) GetByID(ctx context.Context, id int64) (*domain.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherRepo) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherRepo) UpdateStatus(ctx context.Context, id int64, status domain.VoucherStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVoucherRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Voucher, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Voucher), args.Get(1).(int32), args.Error(2)
}
func (m *MockVoucherRepo) Redeem(ctx context.Context, red *domain.VoucherRedemption) error {
	args := m.Called(ctx, red)
	return args.Error(0)
}
func (m *MockVoucherRepo) HasRedeemed(ctx context.Context, voucherID, userID int64) (bool, error) {
	args := m.Called(ctx, voucherID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockVoucherRepo) ListRedemptions(ctx context.Context, voucherID int64) ([]domain.VoucherRedemption, error) {
	args := m.Called(ctx, voucherID)
	return args.Get(0).([]domain.VoucherRedemption), args.Error(1)
}

// MockSponsorRepo
type MockSponsorRepo struct {
	mock.Mock
}

func (m *MockSponsorRepo) CreateRequestWithHold(ctx context.Context, req *domain.AdRedemptionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockSponsorRepo) GetRequestByID(ctx context.Context, id int64) (*domain.AdRedemptionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdRedemptionRequest), args.Error(1)
}
func (m *MockSponsorRepo) ListRequests(ctx context.Context, status domain.AdRequestStatus, page, pageSize int32) ([]domain.AdRedemptionRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.AdRedemptionRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockSponsorRepo) ApproveRequest(ctx context.Context, requestID int64, banner *domain.SponsorBanner, now time.Time) error {
	args := m.Called(ctx, requestID, banner, now)
	return args.Error(0)
}
func (m *MockSponsorRepo) RejectRequest(ctx context.Context, requestID int64, reason string, now time.Time) error {
	args := m.Called(ctx, requestID, reason, now)
	return args.Error(0)
}
func (m *MockSponsorRepo) CreateBanner(ctx context.Context, b *domain.SponsorBanner) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockSponsorRepo) GetBannerByID(ctx context.Context, id int64) (*domain.SponsorBanner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SponsorBanner), args.Error(1)
}
func (m *MockSponsorRepo) ListActiveBanners(ctx context.Context) ([]domain.SponsorBanner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SponsorBanner), args.Error(1)
}
func (m *MockSponsorRepo) ActivateScheduled(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSponsorRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSponsorRepo) ListDraftDue(ctx context.Context, now time.Time) ([]domain.SponsorBanner, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.SponsorBanner), args.Error(1)
}
func (m *MockSponsorRepo) IncrementImpressions(ctx context.Context, bannerID int64) error {
	args := m.Called(ctx, bannerID)
	return args.Error(0)
}
func (m *MockSponsorRepo) IncrementClicks(ctx context.Context, bannerID int64) error {
	args := m.Called(ctx, bannerID)
	return args.Error(0)
}

// MockFundRepo
type MockFundRepo struct {
	mock.Mock
}

func (m *MockFundRepo) RecordDonation(ctx context.Context, md *domain.MoneyDonation, rewardPoints int64) error {
	args := m.Called(ctx, md, rewardPoints)
	return args.Error(0)
}
func (m *MockFundRepo) GetFundBalance(ctx context.Context) (*domain.FundBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundBalance), args.Error(1)
}
func (m *MockFundRepo) ListTransactions(ctx context.Context, page, pageSize int32) ([]domain.FinancialTransaction, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.FinancialTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockFundRepo) CreateMoneyRequest(ctx context.Context, req *domain.MoneyRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockFundRepo) GetMoneyRequestByID(ctx context.Context, id int64) (*domain.MoneyRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyRequest), args.Error(1)
}
func (m *MockFundRepo) ListMoneyRequests(ctx context.Context, status domain.MoneyRequestStatus, page, pageSize int32) ([]domain.MoneyRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.MoneyRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockFundRepo) ApproveMoneyRequest(ctx context.Context, requestID, adminID int64, now time.Time) error {
	args := m.Called(ctx, requestID, adminID, now)
	return args.Error(0)
}
func (m *MockFundRepo) RejectMoneyRequest(ctx context.Context, requestID, adminID int64, reason string, now time.Time) error {
	args := m.Called(ctx, requestID, adminID, reason, now)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDonationClaimedNotification(ctx context.Context, donorEmail, claimantName, donationTitle string) error {
	args := m.Called(ctx, donorEmail, claimantName, donationTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendDonationSentNotification(ctx context.Context, claimantEmail, donorName, donationTitle string) error {
	args := m.Called(ctx, claimantEmail, donorName, donationTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendDonationCompletedNotification(ctx context.Context, email, donationTitle string, points int64) error {
	args := m.Called(ctx, email, donationTitle, points)
	return args.Error(0)
}
func (m *MockEmailService) SendVoucherRedemptionReceipt(ctx context.Context, email, voucherTitle, code string) error {
	args := m.Called(ctx, email, voucherTitle, code)
	return args.Error(0)
}
func (m *MockEmailService) SendAdRequestDecisionNotification(ctx context.Context, email, title, decision, reason string) error {
	args := m.Called(ctx, email, title, decision, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendMoneyRequestDecisionNotification(ctx context.Context, email, decision, reason string, amountCents int64) error {
	args := m.Called(ctx, email, decision, reason, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, paymentReference string, amountCents int64) (bool, error) {
	args := m.Called(ctx, paymentReference, amountCents)
	return args.Bool(0), args.Error(1)
}
