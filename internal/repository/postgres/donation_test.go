package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/repository/postgres"
)

func TestDonationRepository_Claim(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDonationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE donations").
			WithArgs(domain.DonationStatusClaimed, int64(2), int64(12500), now, int64(5), domain.DonationStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Claim(ctx, 5, 2, 12500, now)
		assert.NoError(t, err)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mock.ExpectExec("UPDATE donations").
			WithArgs(domain.DonationStatusClaimed, int64(3), int64(9000), now, int64(5), domain.DonationStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Claim(ctx, 5, 3, 9000, now)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestDonationRepository_ConfirmSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDonationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Advances To Delivered", func(t *testing.T) {
		mock.ExpectQuery("UPDATE donations").
			WithArgs(domain.DonationStatusCompleted, domain.DonationStatusDelivered, now,
				int64(5), domain.DonationStatusClaimed, domain.DonationStatusDelivered).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("DELIVERED"))

		status, err := repo.ConfirmSent(ctx, 5, now)
		assert.NoError(t, err)
		assert.Equal(t, domain.DonationStatusDelivered, status)
	})

	t.Run("Already Confirmed", func(t *testing.T) {
		mock.ExpectQuery("UPDATE donations").
			WithArgs(domain.DonationStatusCompleted, domain.DonationStatusDelivered, now,
				int64(5), domain.DonationStatusClaimed, domain.DonationStatusDelivered).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		_, err := repo.ConfirmSent(ctx, 5, now)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})
}

func TestDonationRepository_ConfirmReceived(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDonationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE donations").
			WithArgs(domain.DonationStatusCompleted, now, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ConfirmReceived(ctx, 5, now)
		assert.NoError(t, err)
	})

	t.Run("Guard Rejects Repeat Or Out Of Order", func(t *testing.T) {
		mock.ExpectExec("UPDATE donations").
			WithArgs(domain.DonationStatusCompleted, now, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ConfirmReceived(ctx, 5, now)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})
}

func TestDonationRepository_AwardCompletionPoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDonationRepository(db)
	ctx := context.Background()

	t.Run("Credits Both Parties Once", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE donations SET points_awarded").
			WithArgs(sqlmock.AnyArg(), int64(5), domain.DonationStatusCompleted).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// donor credit
		mock.ExpectExec("UPDATE users SET eco_points").
			WithArgs(int64(25), sqlmock.AnyArg(), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO point_transactions").
			WithArgs(int64(1), int64(25), domain.PointTransactionTypeDonationReward, int64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		// claimant credit
		mock.ExpectExec("UPDATE users SET eco_points").
			WithArgs(int64(25), sqlmock.AnyArg(), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO point_transactions").
			WithArgs(int64(2), int64(25), domain.PointTransactionTypeDonationReward, int64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		awarded, err := repo.AwardCompletionPoints(ctx, 5, 1, 2, 25)
		assert.NoError(t, err)
		assert.True(t, awarded)
	})

	t.Run("Already Awarded", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE donations SET points_awarded").
			WithArgs(sqlmock.AnyArg(), int64(5), domain.DonationStatusCompleted).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		awarded, err := repo.AwardCompletionPoints(ctx, 5, 1, 2, 25)
		assert.NoError(t, err)
		assert.False(t, awarded)
	})
}

func TestDonationRepository_ExpireAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDonationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE donations").
		WithArgs(domain.DonationStatusExpired, now, domain.DonationStatusAvailable).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.ExpireAvailable(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDonationRepository_ListUnawardedCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDonationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{"id", "donor_id", "claimed_by_id", "title", "description", "food_type",
		"weight_kg", "quantity", "status", "sender_confirmed", "receiver_confirmed",
		"points_awarded", "transport_cost_cents", "pickup_lat", "pickup_lng",
		"expiry", "created_on", "updated_on"}

	t.Run("Returns Unawarded Rows", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow(int64(5), int64(1), int64(2), "Bread", "", "BAKERY",
				2.5, int32(1), "COMPLETED", true, true,
				false, int64(12500), 24.86, 67.0,
				now.Add(-time.Hour), now.Add(-2*time.Hour), now)

		mock.ExpectQuery("SELECT (.+) FROM donations").
			WithArgs(domain.DonationStatusCompleted).
			WillReturnRows(rows)

		donations, err := repo.ListUnawardedCompleted(ctx)
		assert.NoError(t, err)
		assert.Len(t, donations, 1)
		assert.Equal(t, int64(5), donations[0].ID)
		assert.False(t, donations[0].PointsAwarded)
	})

	t.Run("Nothing Pending", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM donations").
			WithArgs(domain.DonationStatusCompleted).
			WillReturnRows(sqlmock.NewRows(columns))

		donations, err := repo.ListUnawardedCompleted(ctx)
		assert.NoError(t, err)
		assert.Empty(t, donations)
	})
}
