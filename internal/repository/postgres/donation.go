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

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `id, donor_id, claimed_by_id, title, description, food_type, weight_kg, quantity,
	status, sender_confirmed, receiver_confirmed, points_awarded, transport_cost_cents,
	pickup_lat, pickup_lng, expiry, created_on, updated_on`

func scanDonation(row interface{ Scan(...interface{}) error }) (*domain.Donation, error) {
	d := &domain.Donation{}
	err := row.Scan(&d.ID, &d.DonorID, &d.ClaimedByID, &d.Title, &d.Description, &d.FoodType,
		&d.WeightKg, &d.Quantity, &d.Status, &d.SenderConfirmed, &d.ReceiverConfirmed,
		&d.PointsAwarded, &d.TransportCostCents, &d.PickupLat, &d.PickupLng,
		&d.Expiry, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donations (donor_id, title, description, food_type, weight_kg, quantity, status,
	              sender_confirmed, receiver_confirmed, points_awarded, pickup_lat, pickup_lng, expiry, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, false, false, false, $8, $9, $10, $11, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, d.DonorID, d.Title, d.Description, d.FoodType, d.WeightKg,
		d.Quantity, d.Status, d.PickupLat, d.PickupLng, d.Expiry, time.Now()).Scan(&d.ID)
}

func (r *donationRepository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Claim is a single conditional update: only an unexpired Available donation
// not owned by the claimant transitions. Two simultaneous claims race on the
// status guard and exactly one wins.
func (r *donationRepository) Claim(ctx context.Context, donationID, claimantID, transportCostCents int64, now time.Time) error {
	query := `UPDATE donations
	          SET status = $1, claimed_by_id = $2, transport_cost_cents = $3, updated_on = $4
	          WHERE id = $5 AND status = $6 AND expiry > $4 AND donor_id <> $2`
	res, err := r.db.ExecContext(ctx, query, domain.DonationStatusClaimed, claimantID, transportCostCents, now, donationID, domain.DonationStatusAvailable)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("donation %d is not claimable: %w", donationID, domain.ErrInvalidState)
	}
	return nil
}

func (r *donationRepository) ConfirmSent(ctx context.Context, donationID int64, now time.Time) (domain.DonationStatus, error) {
	// The CASE picks Completed when the receiver already confirmed, so both
	// confirmation orders resolve without a second round trip.
	query := `UPDATE donations
	          SET sender_confirmed = true,
	              status = CASE WHEN receiver_confirmed THEN $1 ELSE $2 END,
	              updated_on = $3
	          WHERE id = $4 AND sender_confirmed = false AND status IN ($5, $6)
	          RETURNING status`
	var status domain.DonationStatus
	err := r.db.QueryRowContext(ctx, query,
		domain.DonationStatusCompleted, domain.DonationStatusDelivered, now,
		donationID, domain.DonationStatusClaimed, domain.DonationStatusDelivered).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("sender confirmation for donation %d: %w", donationID, domain.ErrAlreadyProcessed)
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *donationRepository) ConfirmReceived(ctx context.Context, donationID int64, now time.Time) error {
	query := `UPDATE donations
	          SET receiver_confirmed = true, status = $1, updated_on = $2
	          WHERE id = $3 AND sender_confirmed = true AND receiver_confirmed = false`
	res, err := r.db.ExecContext(ctx, query, domain.DonationStatusCompleted, now, donationID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("receiver confirmation for donation %d: %w", donationID, domain.ErrAlreadyProcessed)
	}
	return nil
}

// AwardCompletionPoints flips points_awarded and credits both parties in one
// transaction. The flag guard makes the terminal credit idempotent even if
// the completion transition is somehow re-entered.
func (r *donationRepository) AwardCompletionPoints(ctx context.Context, donationID, donorID, claimantID, points int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE donations SET points_awarded = true, updated_on = $1
		 WHERE id = $2 AND status = $3 AND points_awarded = false`,
		time.Now(), donationID, domain.DonationStatusCompleted)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	desc := fmt.Sprintf("Reward for completed donation %d", donationID)
	if err := creditPointsTx(ctx, tx, donorID, points, domain.PointTransactionTypeDonationReward, &donationID, desc); err != nil {
		return false, err
	}
	if err := creditPointsTx(ctx, tx, claimantID, points, domain.PointTransactionTypeDonationReward, &donationID, desc); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *donationRepository) ExpireAvailable(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE donations SET status = $1, updated_on = $2 WHERE status = $3 AND expiry < $2`
	res, err := r.db.ExecContext(ctx, query, domain.DonationStatusExpired, now, domain.DonationStatusAvailable)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *donationRepository) ListUnawardedCompleted(ctx context.Context) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations
	          WHERE status = $1 AND points_awarded = false ORDER BY updated_on`
	rows, err := r.db.QueryContext(ctx, query, domain.DonationStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, *d)
	}
	return donations, rows.Err()
}

func (r *donationRepository) ListAvailable(ctx context.Context, now time.Time, page, pageSize int32) ([]domain.Donation, int32, error) {
	where := `WHERE status = $1 AND expiry > $2`
	return r.list(ctx, where, []interface{}{domain.DonationStatusAvailable, now}, page, pageSize)
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID int64, page, pageSize int32) ([]domain.Donation, int32, error) {
	return r.list(ctx, `WHERE donor_id = $1`, []interface{}{donorID}, page, pageSize)
}

func (r *donationRepository) ListByClaimant(ctx context.Context, claimantID int64, page, pageSize int32) ([]domain.Donation, int32, error) {
	return r.list(ctx, `WHERE claimed_by_id = $1`, []interface{}{claimantID}, page, pageSize)
}

func (r *donationRepository) list(ctx context.Context, where string, args []interface{}, page, pageSize int32) ([]domain.Donation, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM donations ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM donations %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		donationColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, 0, err
		}
		donations = append(donations, *d)
	}
	return donations, count, rows.Err()
}
