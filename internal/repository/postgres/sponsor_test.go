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

func TestSponsorRepository_CreateRequestWithHold(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSponsorRepository(db)
	ctx := context.Background()

	t.Run("Hold And Request Commit Together", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO ad_redemption_requests").
			WithArgs(int64(3), int64(1000), int32(60), "Eat Green", "https://img", "https://target",
				domain.AdRequestStatusPending, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectExec("UPDATE users SET eco_points").
			WithArgs(int64(1000), sqlmock.AnyArg(), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO point_transactions").
			WithArgs(int64(3), int64(-1000), domain.PointTransactionTypeAdHold, int64(11), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		req := &domain.AdRedemptionRequest{
			UserID: 3, PointsCost: 1000, DurationMinutes: 60,
			Title: "Eat Green", ImageURL: "https://img", TargetURL: "https://target",
		}
		err := repo.CreateRequestWithHold(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), req.ID)
		assert.Equal(t, domain.AdRequestStatusPending, req.Status)
	})

	t.Run("Debit Failure Rolls Back The Request", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO ad_redemption_requests").
			WithArgs(int64(3), int64(1000), int32(60), "Eat Green", "", "",
				domain.AdRequestStatusPending, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectExec("UPDATE users SET eco_points").
			WithArgs(int64(1000), sqlmock.AnyArg(), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		req := &domain.AdRedemptionRequest{UserID: 3, PointsCost: 1000, DurationMinutes: 60, Title: "Eat Green"}
		err := repo.CreateRequestWithHold(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})
}

func TestSponsorRepository_RejectRequest_RefundsHeldAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSponsorRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE ad_redemption_requests").
		WithArgs(domain.AdRequestStatusRejected, "off brand", now, int64(11), domain.AdRequestStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "points_cost"}).AddRow(3, 1000))
	// refund is exactly the held 1000, taken from the request row
	mock.ExpectExec("UPDATE users SET eco_points").
		WithArgs(int64(1000), sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO point_transactions").
		WithArgs(int64(3), int64(1000), domain.PointTransactionTypeAdRefund, int64(11), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = repo.RejectRequest(ctx, 11, "off brand", now)
	assert.NoError(t, err)
}

func TestSponsorRepository_BannerSweeps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSponsorRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ActivateScheduled", func(t *testing.T) {
		mock.ExpectExec("UPDATE sponsor_banners").
			WithArgs(domain.BannerStatusActive, now, domain.BannerStatusScheduled).
			WillReturnResult(sqlmock.NewResult(0, 2))

		count, err := repo.ActivateScheduled(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("CompleteExpired", func(t *testing.T) {
		mock.ExpectExec("UPDATE sponsor_banners").
			WithArgs(domain.BannerStatusCompleted, now, domain.BannerStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		count, err := repo.CompleteExpired(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Re-Run Applies Nothing", func(t *testing.T) {
		mock.ExpectExec("UPDATE sponsor_banners").
			WithArgs(domain.BannerStatusActive, now, domain.BannerStatusScheduled).
			WillReturnResult(sqlmock.NewResult(0, 0))

		count, err := repo.ActivateScheduled(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
