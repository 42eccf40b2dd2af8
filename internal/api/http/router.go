package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"ecoshare-backend/internal/security"
	"ecoshare-backend/internal/service"
)

// Services bundles the service dependencies the router wires up.
type Services struct {
	Donation     service.DonationService
	Reward       service.RewardService
	Fund         service.FundService
	Ledger       service.LedgerService
	Banner       service.BannerService
	Notification service.NotificationService
}

// NewRouter builds the full API surface. Everything under /api/v1 requires a
// Bearer token except the public banner endpoints; admin routes additionally
// require the ADMIN role claim.
func NewRouter(svcs *Services, tm security.TokenManager) *mux.Router {
	root := mux.NewRouter()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	donations := NewDonationHandler(svcs.Donation)
	rewards := NewRewardHandler(svcs.Reward)
	fund := NewFundHandler(svcs.Fund)
	users := NewUserHandler(svcs.Ledger)
	banners := NewBannerHandler(svcs.Banner)
	notifications := NewNotificationHandler(svcs.Notification)

	// Public banner rotation, readable without a token
	public := root.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/banners", banners.ListActiveBanners).Methods("GET")
	public.HandleFunc("/banners/{id}", banners.GetBanner).Methods("GET")
	public.HandleFunc("/banners/{id}/impression", banners.RecordImpression).Methods("POST")
	public.HandleFunc("/banners/{id}/click", banners.RecordClick).Methods("POST")

	auth := NewAuthMiddleware(tm)
	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Authenticate)

	api.HandleFunc("/donations", donations.PostDonation).Methods("POST")
	api.HandleFunc("/donations", donations.ListAvailable).Methods("GET")
	api.HandleFunc("/donations/mine", donations.ListMyDonations).Methods("GET")
	api.HandleFunc("/donations/claimed", donations.ListMyClaims).Methods("GET")
	api.HandleFunc("/donations/{id}", donations.GetDonation).Methods("GET")
	api.HandleFunc("/donations/{id}/claim", donations.ClaimDonation).Methods("POST")
	api.HandleFunc("/donations/{id}/confirm-sent", donations.ConfirmSent).Methods("POST")
	api.HandleFunc("/donations/{id}/confirm-received", donations.ConfirmReceived).Methods("POST")
	api.HandleFunc("/donations/{id}/transport-estimate", donations.EstimateTransportCost).Methods("GET")

	api.HandleFunc("/vouchers", rewards.ListVouchers).Methods("GET")
	api.HandleFunc("/vouchers/{id}/redeem", rewards.RedeemVoucher).Methods("POST")
	api.HandleFunc("/ad-requests", rewards.RequestAdRedemption).Methods("POST")

	api.HandleFunc("/fund/donations", fund.RecordMoneyDonation).Methods("POST")
	api.HandleFunc("/fund/requests", fund.CreateMoneyRequest).Methods("POST")
	api.HandleFunc("/fund/balance", fund.GetFundBalance).Methods("GET")
	api.HandleFunc("/fund/transactions", fund.ListTransactions).Methods("GET")

	api.HandleFunc("/me/points", users.GetBalance).Methods("GET")
	api.HandleFunc("/me/points/history", users.GetPointHistory).Methods("GET")
	api.HandleFunc("/me/notifications", notifications.GetNotifications).Methods("GET")
	api.HandleFunc("/me/notifications/{id}/read", notifications.MarkAsRead).Methods("POST")

	// Admin surface
	api.HandleFunc("/admin/vouchers", RequireAdmin(rewards.CreateVoucher)).Methods("POST")
	api.HandleFunc("/admin/vouchers/{id}/deactivate", RequireAdmin(rewards.DeactivateVoucher)).Methods("POST")
	api.HandleFunc("/admin/vouchers/{id}/redemptions", RequireAdmin(rewards.ListVoucherRedemptions)).Methods("GET")
	api.HandleFunc("/admin/ad-requests", RequireAdmin(rewards.ListPendingAdRequests)).Methods("GET")
	api.HandleFunc("/admin/ad-requests/{id}/approve", RequireAdmin(rewards.ApproveAdRedemption)).Methods("POST")
	api.HandleFunc("/admin/ad-requests/{id}/reject", RequireAdmin(rewards.RejectAdRedemption)).Methods("POST")
	api.HandleFunc("/admin/fund/requests", RequireAdmin(fund.ListPendingMoneyRequests)).Methods("GET")
	api.HandleFunc("/admin/fund/requests/{id}/approve", RequireAdmin(fund.ApproveMoneyRequest)).Methods("POST")
	api.HandleFunc("/admin/fund/requests/{id}/reject", RequireAdmin(fund.RejectMoneyRequest)).Methods("POST")

	return root
}
