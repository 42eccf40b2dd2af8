package service

import (
	"context"

	"ecoshare-backend/internal/domain"
)

type DonationService interface {
	PostDonation(ctx context.Context, donorID int64, d *domain.Donation) (*domain.Donation, error)
	ClaimDonation(ctx context.Context, donationID, claimantID int64) (*domain.Donation, error)
	ConfirmSent(ctx context.Context, donationID, actorID int64) (*domain.Donation, error)
	ConfirmReceived(ctx context.Context, donationID, actorID int64) (*domain.Donation, error)
	GetDonation(ctx context.Context, donationID int64) (*domain.Donation, error)
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Donation, int32, error)
	ListMyDonations(ctx context.Context, donorID int64, page, pageSize int32) ([]domain.Donation, int32, error)
	ListMyClaims(ctx context.Context, claimantID int64, page, pageSize int32) ([]domain.Donation, int32, error)
	EstimateTransportCost(ctx context.Context, donationID, claimantID int64) (int64, error)
}

type RewardService interface {
	RedeemVoucher(ctx context.Context, voucherID, userID int64) (*domain.VoucherRedemption, error)
	RequestAdRedemption(ctx context.Context, userID, pointsCost int64, durationMinutes int32, title, imageURL, targetURL string) (*domain.AdRedemptionRequest, error)
	ApproveAdRedemption(ctx context.Context, adminID, requestID int64) (*domain.SponsorBanner, error)
	RejectAdRedemption(ctx context.Context, adminID, requestID int64, reason string) error

	CreateVoucher(ctx context.Context, adminID int64, v *domain.Voucher) (*domain.Voucher, error)
	DeactivateVoucher(ctx context.Context, adminID, voucherID int64) error
	ListVouchers(ctx context.Context, page, pageSize int32) ([]domain.Voucher, int32, error)
	ListVoucherRedemptions(ctx context.Context, voucherID int64) ([]domain.VoucherRedemption, error)
	ListPendingAdRequests(ctx context.Context, page, pageSize int32) ([]domain.AdRedemptionRequest, int32, error)
}

type FundService interface {
	RecordMoneyDonation(ctx context.Context, userID, amountCents int64, paymentReference string) (*domain.MoneyDonation, error)
	CreateMoneyRequest(ctx context.Context, requesterID, amountCents int64, purpose string) (*domain.MoneyRequest, error)
	ApproveMoneyRequest(ctx context.Context, adminID, requestID int64) error
	RejectMoneyRequest(ctx context.Context, adminID, requestID int64, reason string) error
	GetFundBalance(ctx context.Context) (*domain.FundBalance, error)
	ListTransactions(ctx context.Context, page, pageSize int32) ([]domain.FinancialTransaction, int32, error)
	ListPendingMoneyRequests(ctx context.Context, page, pageSize int32) ([]domain.MoneyRequest, int32, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetPointHistory(ctx context.Context, userID int64, page, pageSize int32) ([]domain.PointTransaction, int32, error)
}

type BannerService interface {
	ListActiveBanners(ctx context.Context) ([]domain.SponsorBanner, error)
	GetBanner(ctx context.Context, bannerID int64) (*domain.SponsorBanner, error)
	RecordImpression(ctx context.Context, bannerID int64) error
	RecordClick(ctx context.Context, bannerID int64) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type EmailService interface {
	SendDonationClaimedNotification(ctx context.Context, donorEmail, claimantName, donationTitle string) error
	SendDonationSentNotification(ctx context.Context, claimantEmail, donorName, donationTitle string) error
	SendDonationCompletedNotification(ctx context.Context, email, donationTitle string, points int64) error
	SendVoucherRedemptionReceipt(ctx context.Context, email, voucherTitle, code string) error
	SendAdRequestDecisionNotification(ctx context.Context, email, title, decision, reason string) error
	SendMoneyRequestDecisionNotification(ctx context.Context, email, decision, reason string, amountCents int64) error
	SendAdminNotification(ctx context.Context, subject, message string) error
}
