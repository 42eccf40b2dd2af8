package repository

import (
	"context"
	"time"

	"ecoshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// CreditPoints adds amount to the user's balance and appends a point
	// transaction in the same store transaction.
	CreditPoints(ctx context.Context, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error
	// DebitPoints subtracts amount, guarded so the balance never goes
	// negative; returns domain.ErrInsufficientBalance when it would.
	DebitPoints(ctx context.Context, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error
	ListPointTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.PointTransaction, int32, error)
}

type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	// Claim atomically moves an unexpired Available donation to Claimed.
	// A lost race or stale read surfaces as domain.ErrInvalidState.
	Claim(ctx context.Context, donationID, claimantID, transportCostCents int64, now time.Time) error
	// ConfirmSent sets sender_confirmed and advances the status to Delivered,
	// or Completed when the receiver already confirmed. Returns the new
	// status; domain.ErrAlreadyProcessed when the flag was already set.
	ConfirmSent(ctx context.Context, donationID int64, now time.Time) (domain.DonationStatus, error)
	// ConfirmReceived sets receiver_confirmed and completes the donation.
	// Requires sender_confirmed; domain.ErrAlreadyProcessed on repeats.
	ConfirmReceived(ctx context.Context, donationID int64, now time.Time) error
	// AwardCompletionPoints credits donor and claimant for a completed
	// donation exactly once. Returns false when already awarded.
	AwardCompletionPoints(ctx context.Context, donationID, donorID, claimantID, points int64) (bool, error)
	// ExpireAvailable persists Available -> Expired for donations past
	// expiry; safe to re-run concurrently. Returns rows affected.
	ExpireAvailable(ctx context.Context, now time.Time) (int64, error)
	// ListUnawardedCompleted returns Completed donations whose points were
	// never credited, so the sweep can retry a failed award.
	ListUnawardedCompleted(ctx context.Context) ([]domain.Donation, error)
	ListAvailable(ctx context.Context, now time.Time, page, pageSize int32) ([]domain.Donation, int32, error)
	ListByDonor(ctx context.Context, donorID int64, page, pageSize int32) ([]domain.Donation, int32, error)
	ListByClaimant(ctx context.Context, claimantID int64, page, pageSize int32) ([]domain.Donation, int32, error)
}

type VoucherRepository interface {
	Create(ctx context.Context, v *domain.Voucher) error
	GetByID(ctx context.Context, id int64) (*domain.Voucher, error)
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	UpdateStatus(ctx context.Context, id int64, status domain.VoucherStatus) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Voucher, int32, error)

	// Redeem atomically inserts the redemption record and increments the
	// counter, guarded by current_redemptions < max_redemptions and the
	// unique (voucher_id, user_id) index. Errors: ErrCapacityExceeded,
	// ErrAlreadyProcessed.
	Redeem(ctx context.Context, red *domain.VoucherRedemption) error
	HasRedeemed(ctx context.Context, voucherID, userID int64) (bool, error)
	ListRedemptions(ctx context.Context, voucherID int64) ([]domain.VoucherRedemption, error)
}

type SponsorRepository interface {
	// CreateRequestWithHold debits points_cost from the user and inserts the
	// pending request in one store transaction; a request never exists
	// without its points held. Errors: ErrInsufficientBalance.
	CreateRequestWithHold(ctx context.Context, req *domain.AdRedemptionRequest) error
	GetRequestByID(ctx context.Context, id int64) (*domain.AdRedemptionRequest, error)
	ListRequests(ctx context.Context, status domain.AdRequestStatus, page, pageSize int32) ([]domain.AdRedemptionRequest, int32, error)
	// ApproveRequest transitions pending -> approved and creates the banner
	// atomically; the held points stay consumed. ErrAlreadyProcessed when
	// the request is no longer pending.
	ApproveRequest(ctx context.Context, requestID int64, banner *domain.SponsorBanner, now time.Time) error
	// RejectRequest transitions pending -> rejected and refunds exactly the
	// originally held points in the same store transaction.
	RejectRequest(ctx context.Context, requestID int64, reason string, now time.Time) error

	CreateBanner(ctx context.Context, b *domain.SponsorBanner) error
	GetBannerByID(ctx context.Context, id int64) (*domain.SponsorBanner, error)
	ListActiveBanners(ctx context.Context) ([]domain.SponsorBanner, error)
	// ActivateScheduled and CompleteExpired are conditional updates keyed on
	// the current status, so concurrent sweeps re-apply nothing.
	ActivateScheduled(ctx context.Context, now time.Time) (int64, error)
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListDraftDue(ctx context.Context, now time.Time) ([]domain.SponsorBanner, error)
	IncrementImpressions(ctx context.Context, bannerID int64) error
	IncrementClicks(ctx context.Context, bannerID int64) error
}

type FundRepository interface {
	// RecordDonation appends the money donation and its financial
	// transaction, adjusts the aggregate, and credits the reward points in
	// one store transaction.
	RecordDonation(ctx context.Context, md *domain.MoneyDonation, rewardPoints int64) error
	GetFundBalance(ctx context.Context) (*domain.FundBalance, error)
	ListTransactions(ctx context.Context, page, pageSize int32) ([]domain.FinancialTransaction, int32, error)

	CreateMoneyRequest(ctx context.Context, req *domain.MoneyRequest) error
	GetMoneyRequestByID(ctx context.Context, id int64) (*domain.MoneyRequest, error)
	ListMoneyRequests(ctx context.Context, status domain.MoneyRequestStatus, page, pageSize int32) ([]domain.MoneyRequest, int32, error)
	// ApproveMoneyRequest records the withdrawal and decrements the fund
	// balance, guarded so the balance cannot go negative. Errors:
	// ErrAlreadyProcessed, ErrInsufficientBalance.
	ApproveMoneyRequest(ctx context.Context, requestID, adminID int64, now time.Time) error
	RejectMoneyRequest(ctx context.Context, requestID, adminID int64, reason string, now time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
