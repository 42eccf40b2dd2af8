package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/repository"

	"github.com/lib/pq"
)

type voucherRepository struct {
	db *sql.DB
}

func NewVoucherRepository(db *sql.DB) repository.VoucherRepository {
	return &voucherRepository{db: db}
}

const voucherColumns = `id, code, title, COALESCE(description, ''), min_eco_points, max_redemptions,
	current_redemptions, status, created_by, created_on, updated_on`

func (r *voucherRepository) Create(ctx context.Context, v *domain.Voucher) error {
	query := `INSERT INTO vouchers (code, title, description, min_eco_points, max_redemptions, current_redemptions, status, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, v.Code, v.Title, v.Description, v.MinEcoPoints,
		v.MaxRedemptions, v.Status, v.CreatedBy, time.Now()).Scan(&v.ID)
}

func (r *voucherRepository) GetByID(ctx context.Context, id int64) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *voucherRepository) scanOne(row *sql.Row) (*domain.Voucher, error) {
	v := &domain.Voucher{}
	err := row.Scan(&v.ID, &v.Code, &v.Title, &v.Description, &v.MinEcoPoints, &v.MaxRedemptions,
		&v.CurrentRedemptions, &v.Status, &v.CreatedBy, &v.CreatedOn, &v.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *voucherRepository) UpdateStatus(ctx context.Context, id int64, status domain.VoucherStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vouchers SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *voucherRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Voucher, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vouchers`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		var v domain.Voucher
		if err := rows.Scan(&v.ID, &v.Code, &v.Title, &v.Description, &v.MinEcoPoints, &v.MaxRedemptions,
			&v.CurrentRedemptions, &v.Status, &v.CreatedBy, &v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, 0, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, count, rows.Err()
}

// Redeem inserts the redemption record and bumps the counter in one
// transaction. The counter guard enforces the cap under concurrent
// redemptions; the unique (voucher_id, user_id) index enforces one
// redemption per user even when two requests race the HasRedeemed check.
func (r *voucherRepository) Redeem(ctx context.Context, red *domain.VoucherRedemption) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE vouchers SET current_redemptions = current_redemptions + 1, updated_on = $1
		 WHERE id = $2 AND status = $3 AND current_redemptions < max_redemptions`,
		time.Now(), red.VoucherID, domain.VoucherStatusActive)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("voucher %d redemption limit: %w", red.VoucherID, domain.ErrCapacityExceeded)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO voucher_redemptions (voucher_id, user_id, points_cost, redeemed_on)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		red.VoucherID, red.UserID, red.PointsCost, time.Now()).Scan(&red.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("voucher %d already redeemed by user %d: %w", red.VoucherID, red.UserID, domain.ErrAlreadyProcessed)
		}
		return err
	}
	return tx.Commit()
}

func (r *voucherRepository) HasRedeemed(ctx context.Context, voucherID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM voucher_redemptions WHERE voucher_id = $1 AND user_id = $2)`
	err := r.db.QueryRowContext(ctx, query, voucherID, userID).Scan(&exists)
	return exists, err
}

func (r *voucherRepository) ListRedemptions(ctx context.Context, voucherID int64) ([]domain.VoucherRedemption, error) {
	query := `SELECT id, voucher_id, user_id, points_cost, redeemed_on
	          FROM voucher_redemptions WHERE voucher_id = $1 ORDER BY redeemed_on DESC`
	rows, err := r.db.QueryContext(ctx, query, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reds []domain.VoucherRedemption
	for rows.Next() {
		var red domain.VoucherRedemption
		if err := rows.Scan(&red.ID, &red.VoucherID, &red.UserID, &red.PointsCost, &red.RedeemedOn); err != nil {
			return nil, err
		}
		reds = append(reds, red)
	}
	return reds, rows.Err()
}
