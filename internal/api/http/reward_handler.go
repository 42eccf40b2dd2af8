package http

import (
	"net/http"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/service"
)

type RewardHandler struct {
	rewards service.RewardService
}

func NewRewardHandler(rewards service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

func (h *RewardHandler) RedeemVoucher(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	voucherID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid voucher id")
		return
	}

	redemption, err := h.rewards.RedeemVoucher(r.Context(), voucherID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, redemption)
}

func (h *RewardHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	vouchers, total, err := h.rewards.ListVouchers(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: vouchers, Page: page, PageSize: pageSize, TotalCount: total})
}

type adRequestRequest struct {
	PointsCost      int64  `json:"points_cost"`
	DurationMinutes int32  `json:"duration_minutes"`
	Title           string `json:"title"`
	ImageURL        string `json:"image_url"`
	TargetURL       string `json:"target_url"`
}

func (h *RewardHandler) RequestAdRedemption(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req adRequestRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	request, err := h.rewards.RequestAdRedemption(r.Context(), userID, req.PointsCost, req.DurationMinutes, req.Title, req.ImageURL, req.TargetURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *RewardHandler) ApproveAdRedemption(w http.ResponseWriter, r *http.Request) {
	adminID, _ := userIDFromContext(r.Context())
	requestID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid request id")
		return
	}

	banner, err := h.rewards.ApproveAdRedemption(r.Context(), adminID, requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *RewardHandler) RejectAdRedemption(w http.ResponseWriter, r *http.Request) {
	adminID, _ := userIDFromContext(r.Context())
	requestID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid request id")
		return
	}

	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.rewards.RejectAdRedemption(r.Context(), adminID, requestID, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *RewardHandler) ListPendingAdRequests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	requests, total, err := h.rewards.ListPendingAdRequests(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: requests, Page: page, PageSize: pageSize, TotalCount: total})
}

type createVoucherRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	MinEcoPoints   int64  `json:"min_eco_points"`
	MaxRedemptions int32  `json:"max_redemptions"`
}

func (h *RewardHandler) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	adminID, _ := userIDFromContext(r.Context())

	var req createVoucherRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	voucher := &domain.Voucher{
		Title:          req.Title,
		Description:    req.Description,
		MinEcoPoints:   req.MinEcoPoints,
		MaxRedemptions: req.MaxRedemptions,
	}

	created, err := h.rewards.CreateVoucher(r.Context(), adminID, voucher)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RewardHandler) DeactivateVoucher(w http.ResponseWriter, r *http.Request) {
	adminID, _ := userIDFromContext(r.Context())
	voucherID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid voucher id")
		return
	}

	if err := h.rewards.DeactivateVoucher(r.Context(), adminID, voucherID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *RewardHandler) ListVoucherRedemptions(w http.ResponseWriter, r *http.Request) {
	voucherID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid voucher id")
		return
	}

	redemptions, err := h.rewards.ListVoucherRedemptions(r.Context(), voucherID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, redemptions)
}
