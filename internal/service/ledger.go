package service

import (
	"context"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/repository"
)

type ledgerService struct {
	userRepo repository.UserRepository
}

func NewLedgerService(userRepo repository.UserRepository) LedgerService {
	return &ledgerService{userRepo: userRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.EcoPoints, nil
}

func (s *ledgerService) GetPointHistory(ctx context.Context, userID int64, page, pageSize int32) ([]domain.PointTransaction, int32, error) {
	return s.userRepo.ListPointTransactions(ctx, userID, page, pageSize)
}
