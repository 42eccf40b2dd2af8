package http

import (
	"net/http"

	"ecoshare-backend/internal/service"
)

type FundHandler struct {
	fund service.FundService
}

func NewFundHandler(fund service.FundService) *FundHandler {
	return &FundHandler{fund: fund}
}

type moneyDonationRequest struct {
	AmountCents      int64  `json:"amount_cents"`
	PaymentReference string `json:"payment_reference"`
}

func (h *FundHandler) RecordMoneyDonation(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req moneyDonationRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	donation, err := h.fund.RecordMoneyDonation(r.Context(), userID, req.AmountCents, req.PaymentReference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, donation)
}

type moneyRequestRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Purpose     string `json:"purpose"`
}

func (h *FundHandler) CreateMoneyRequest(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req moneyRequestRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	request, err := h.fund.CreateMoneyRequest(r.Context(), userID, req.AmountCents, req.Purpose)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *FundHandler) ApproveMoneyRequest(w http.ResponseWriter, r *http.Request) {
	adminID, _ := userIDFromContext(r.Context())
	requestID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid request id")
		return
	}

	if err := h.fund.ApproveMoneyRequest(r.Context(), adminID, requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *FundHandler) RejectMoneyRequest(w http.ResponseWriter, r *http.Request) {
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

	if err := h.fund.RejectMoneyRequest(r.Context(), adminID, requestID, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *FundHandler) GetFundBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.fund.GetFundBalance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (h *FundHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	transactions, total, err := h.fund.ListTransactions(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: transactions, Page: page, PageSize: pageSize, TotalCount: total})
}

func (h *FundHandler) ListPendingMoneyRequests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	requests, total, err := h.fund.ListPendingMoneyRequests(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: requests, Page: page, PageSize: pageSize, TotalCount: total})
}
