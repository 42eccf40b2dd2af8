package postgres

import (
	"database/sql"

	"ecoshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.DonationRepository
	repository.VoucherRepository
	repository.SponsorRepository
	repository.FundRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		DonationRepository:     NewDonationRepository(db),
		VoucherRepository:      NewVoucherRepository(db),
		SponsorRepository:      NewSponsorRepository(db),
		FundRepository:         NewFundRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
