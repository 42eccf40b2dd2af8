package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/service"
)

type DonationHandler struct {
	donations service.DonationService
}

func NewDonationHandler(donations service.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type postDonationRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FoodType    string    `json:"food_type"`
	WeightKg    float64   `json:"weight_kg"`
	Quantity    int32     `json:"quantity"`
	PickupLat   float64   `json:"pickup_lat"`
	PickupLng   float64   `json:"pickup_lng"`
	Expiry      time.Time `json:"expiry"`
}

func (h *DonationHandler) PostDonation(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req postDonationRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	donation := &domain.Donation{
		Title:       req.Title,
		Description: req.Description,
		FoodType:    req.FoodType,
		WeightKg:    req.WeightKg,
		Quantity:    req.Quantity,
		PickupLat:   req.PickupLat,
		PickupLng:   req.PickupLng,
		Expiry:      req.Expiry,
	}

	created, err := h.donations.PostDonation(r.Context(), userID, donation)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DonationHandler) ClaimDonation(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	donationID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid donation id")
		return
	}

	donation, err := h.donations.ClaimDonation(r.Context(), donationID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) ConfirmSent(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	donationID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid donation id")
		return
	}

	donation, err := h.donations.ConfirmSent(r.Context(), donationID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) ConfirmReceived(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	donationID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid donation id")
		return
	}

	donation, err := h.donations.ConfirmReceived(r.Context(), donationID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) GetDonation(w http.ResponseWriter, r *http.Request) {
	donationID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid donation id")
		return
	}

	donation, err := h.donations.GetDonation(r.Context(), donationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donation)
}

func (h *DonationHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	donations, total, err := h.donations.ListAvailable(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: donations, Page: page, PageSize: pageSize, TotalCount: total})
}

func (h *DonationHandler) ListMyDonations(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	page, pageSize := pagination(r)
	donations, total, err := h.donations.ListMyDonations(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: donations, Page: page, PageSize: pageSize, TotalCount: total})
}

func (h *DonationHandler) ListMyClaims(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	page, pageSize := pagination(r)
	donations, total, err := h.donations.ListMyClaims(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: donations, Page: page, PageSize: pageSize, TotalCount: total})
}

func (h *DonationHandler) EstimateTransportCost(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	donationID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid donation id")
		return
	}

	costCents, err := h.donations.EstimateTransportCost(r.Context(), donationID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"transport_cost_cents": costCents})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
