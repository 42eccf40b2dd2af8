package http

import (
	"net/http"

	"ecoshare-backend/internal/service"
)

type BannerHandler struct {
	banners service.BannerService
}

func NewBannerHandler(banners service.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

func (h *BannerHandler) ListActiveBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.ListActiveBanners(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

func (h *BannerHandler) GetBanner(w http.ResponseWriter, r *http.Request) {
	bannerID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid banner id")
		return
	}

	banner, err := h.banners.GetBanner(r.Context(), bannerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) RecordImpression(w http.ResponseWriter, r *http.Request) {
	bannerID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid banner id")
		return
	}

	if err := h.banners.RecordImpression(r.Context(), bannerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BannerHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	bannerID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "invalid banner id")
		return
	}

	if err := h.banners.RecordClick(r.Context(), bannerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
