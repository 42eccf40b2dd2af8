package service

import (
	"context"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/repository"
)

type bannerService struct {
	sponsorRepo repository.SponsorRepository
}

func NewBannerService(sponsorRepo repository.SponsorRepository) BannerService {
	return &bannerService{sponsorRepo: sponsorRepo}
}

func (s *bannerService) ListActiveBanners(ctx context.Context) ([]domain.SponsorBanner, error) {
	return s.sponsorRepo.ListActiveBanners(ctx)
}

func (s *bannerService) GetBanner(ctx context.Context, bannerID int64) (*domain.SponsorBanner, error) {
	return s.sponsorRepo.GetBannerByID(ctx, bannerID)
}

func (s *bannerService) RecordImpression(ctx context.Context, bannerID int64) error {
	return s.sponsorRepo.IncrementImpressions(ctx, bannerID)
}

func (s *bannerService) RecordClick(ctx context.Context, bannerID int64) error {
	return s.sponsorRepo.IncrementClicks(ctx, bannerID)
}
