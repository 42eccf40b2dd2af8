package http

import (
	"net/http"

	"ecoshare-backend/internal/service"
)

type UserHandler struct {
	ledger service.LedgerService
}

func NewUserHandler(ledger service.LedgerService) *UserHandler {
	return &UserHandler{ledger: ledger}
}

func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	balance, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"eco_points": balance})
}

func (h *UserHandler) GetPointHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	page, pageSize := pagination(r)

	transactions, total, err := h.ledger.GetPointHistory(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: transactions, Page: page, PageSize: pageSize, TotalCount: total})
}
