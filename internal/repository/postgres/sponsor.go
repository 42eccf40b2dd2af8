package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/repository"
)

type sponsorRepository struct {
	db *sql.DB
}

func NewSponsorRepository(db *sql.DB) repository.SponsorRepository {
	return &sponsorRepository{db: db}
}

const adRequestColumns = `id, user_id, points_cost, duration_minutes, title, COALESCE(image_url, ''),
	COALESCE(target_url, ''), status, COALESCE(reason, ''), banner_id, created_on, updated_on`

const bannerColumns = `id, sponsor_id, title, COALESCE(image_url, ''), COALESCE(target_url, ''),
	active, status, start_date, end_date, impressions, clicks, created_on, updated_on`

// CreateRequestWithHold debits the user and inserts the pending request in
// one transaction; if the debit fails nothing is committed, so a request can
// never exist without its points held.
func (r *sponsorRepository) CreateRequestWithHold(ctx context.Context, req *domain.AdRedemptionRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO ad_redemption_requests (user_id, points_cost, duration_minutes, title, image_url, target_url, status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`,
		req.UserID, req.PointsCost, req.DurationMinutes, req.Title, req.ImageURL, req.TargetURL,
		domain.AdRequestStatusPending, now).Scan(&req.ID)
	if err != nil {
		return err
	}
	req.Status = domain.AdRequestStatusPending

	desc := fmt.Sprintf("Points held for ad redemption request %d", req.ID)
	if err := debitPointsTx(ctx, tx, req.UserID, req.PointsCost, domain.PointTransactionTypeAdHold, &req.ID, desc); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sponsorRepository) GetRequestByID(ctx context.Context, id int64) (*domain.AdRedemptionRequest, error) {
	req := &domain.AdRedemptionRequest{}
	query := `SELECT ` + adRequestColumns + ` FROM ad_redemption_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.UserID, &req.PointsCost,
		&req.DurationMinutes, &req.Title, &req.ImageURL, &req.TargetURL, &req.Status, &req.Reason,
		&req.BannerID, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *sponsorRepository) ListRequests(ctx context.Context, status domain.AdRequestStatus, page, pageSize int32) ([]domain.AdRedemptionRequest, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM ad_redemption_requests WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + adRequestColumns + ` FROM ad_redemption_requests WHERE status = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.AdRedemptionRequest
	for rows.Next() {
		var req domain.AdRedemptionRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.PointsCost, &req.DurationMinutes, &req.Title,
			&req.ImageURL, &req.TargetURL, &req.Status, &req.Reason, &req.BannerID, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	return reqs, count, rows.Err()
}

// ApproveRequest converts a pending request into a banner. The status guard
// ensures a request is approved or rejected at most once; the held points
// were debited at request time and need no further balance change.
func (r *sponsorRepository) ApproveRequest(ctx context.Context, requestID int64, banner *domain.SponsorBanner, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE ad_redemption_requests SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		domain.AdRequestStatusApproved, now, requestID, domain.AdRequestStatusPending)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("ad redemption request %d is not pending: %w", requestID, domain.ErrAlreadyProcessed)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO sponsor_banners (sponsor_id, title, image_url, target_url, active, status, start_date, end_date, impressions, clicks, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $9) RETURNING id`,
		banner.SponsorID, banner.Title, banner.ImageURL, banner.TargetURL, banner.Active, banner.Status,
		banner.StartDate, banner.EndDate, now).Scan(&banner.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE ad_redemption_requests SET banner_id = $1 WHERE id = $2`, banner.ID, requestID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// RejectRequest refunds the points_cost captured on the request row itself,
// so the refund is exactly the held amount regardless of any balance changes
// since the hold.
func (r *sponsorRepository) RejectRequest(ctx context.Context, requestID int64, reason string, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID, pointsCost int64
	err = tx.QueryRowContext(ctx,
		`UPDATE ad_redemption_requests SET status = $1, reason = $2, updated_on = $3
		 WHERE id = $4 AND status = $5 RETURNING user_id, points_cost`,
		domain.AdRequestStatusRejected, reason, now, requestID, domain.AdRequestStatusPending).Scan(&userID, &pointsCost)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ad redemption request %d is not pending: %w", requestID, domain.ErrAlreadyProcessed)
	}
	if err != nil {
		return err
	}

	desc := fmt.Sprintf("Refund for rejected ad redemption request %d", requestID)
	if err := creditPointsTx(ctx, tx, userID, pointsCost, domain.PointTransactionTypeAdRefund, &requestID, desc); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sponsorRepository) CreateBanner(ctx context.Context, b *domain.SponsorBanner) error {
	query := `INSERT INTO sponsor_banners (sponsor_id, title, image_url, target_url, active, status, start_date, end_date, impressions, clicks, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.SponsorID, b.Title, b.ImageURL, b.TargetURL, b.Active,
		b.Status, b.StartDate, b.EndDate, time.Now()).Scan(&b.ID)
}

func (r *sponsorRepository) GetBannerByID(ctx context.Context, id int64) (*domain.SponsorBanner, error) {
	b := &domain.SponsorBanner{}
	query := `SELECT ` + bannerColumns + ` FROM sponsor_banners WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.SponsorID, &b.Title, &b.ImageURL,
		&b.TargetURL, &b.Active, &b.Status, &b.StartDate, &b.EndDate, &b.Impressions, &b.Clicks,
		&b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *sponsorRepository) ListActiveBanners(ctx context.Context) ([]domain.SponsorBanner, error) {
	query := `SELECT ` + bannerColumns + ` FROM sponsor_banners WHERE status = $1 AND active = true ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.BannerStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBanners(rows)
}

// ActivateScheduled and CompleteExpired are conditional updates keyed on the
// current status: a transition that already happened matches zero rows, so
// re-running a sweep concurrently with itself is a no-op.
func (r *sponsorRepository) ActivateScheduled(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE sponsor_banners SET status = $1, active = true, updated_on = $2
	          WHERE status = $3 AND start_date <= $2 AND (end_date IS NULL OR end_date >= $2)`
	res, err := r.db.ExecContext(ctx, query, domain.BannerStatusActive, now, domain.BannerStatusScheduled)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sponsorRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE sponsor_banners SET status = $1, active = false, updated_on = $2
	          WHERE status = $3 AND end_date IS NOT NULL AND end_date < $2`
	res, err := r.db.ExecContext(ctx, query, domain.BannerStatusCompleted, now, domain.BannerStatusActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sponsorRepository) ListDraftDue(ctx context.Context, now time.Time) ([]domain.SponsorBanner, error) {
	query := `SELECT ` + bannerColumns + ` FROM sponsor_banners WHERE status = $1 AND start_date IS NOT NULL AND start_date <= $2`
	rows, err := r.db.QueryContext(ctx, query, domain.BannerStatusDraft, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBanners(rows)
}

func (r *sponsorRepository) IncrementImpressions(ctx context.Context, bannerID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sponsor_banners SET impressions = impressions + 1 WHERE id = $1`, bannerID)
	return err
}

func (r *sponsorRepository) IncrementClicks(ctx context.Context, bannerID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sponsor_banners SET clicks = clicks + 1 WHERE id = $1`, bannerID)
	return err
}

func scanBanners(rows *sql.Rows) ([]domain.SponsorBanner, error) {
	var banners []domain.SponsorBanner
	for rows.Next() {
		var b domain.SponsorBanner
		if err := rows.Scan(&b.ID, &b.SponsorID, &b.Title, &b.ImageURL, &b.TargetURL, &b.Active,
			&b.Status, &b.StartDate, &b.EndDate, &b.Impressions, &b.Clicks, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}
