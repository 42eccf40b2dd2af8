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

type fundRepository struct {
	db *sql.DB
}

func NewFundRepository(db *sql.DB) repository.FundRepository {
	return &fundRepository{db: db}
}

// RecordDonation appends the money donation, its financial transaction, the
// aggregate adjustment and the EcoPoints reward in one transaction. Both
// total_donations and total_balance move by the same amount, which preserves
// total_balance == total_donations - total_withdrawals.
func (r *fundRepository) RecordDonation(ctx context.Context, md *domain.MoneyDonation, rewardPoints int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO money_donations (user_id, amount_cents, payment_reference, status, created_on)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		md.UserID, md.AmountCents, md.PaymentReference, domain.MoneyDonationStatusCompleted, now).Scan(&md.ID)
	if err != nil {
		return err
	}
	md.Status = domain.MoneyDonationStatusCompleted

	_, err = tx.ExecContext(ctx,
		`INSERT INTO financial_transactions (user_id, type, amount_cents, reference, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		md.UserID, domain.TransactionTypeDonation, md.AmountCents, md.PaymentReference,
		fmt.Sprintf("Money donation %d", md.ID), now)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE fund_balance SET total_donations_cents = total_donations_cents + $1,
		        total_balance_cents = total_balance_cents + $1, updated_on = $2`,
		md.AmountCents, now)
	if err != nil {
		return err
	}

	if rewardPoints > 0 {
		desc := fmt.Sprintf("Reward for money donation %d", md.ID)
		if err := creditPointsTx(ctx, tx, md.UserID, rewardPoints, domain.PointTransactionTypeMoneyReward, &md.ID, desc); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *fundRepository) GetFundBalance(ctx context.Context) (*domain.FundBalance, error) {
	fb := &domain.FundBalance{}
	query := `SELECT total_donations_cents, total_withdrawals_cents, total_balance_cents, updated_on FROM fund_balance`
	err := r.db.QueryRowContext(ctx, query).Scan(&fb.TotalDonationsCents, &fb.TotalWithdrawalsCents, &fb.TotalBalanceCents, &fb.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

func (r *fundRepository) ListTransactions(ctx context.Context, page, pageSize int32) ([]domain.FinancialTransaction, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM financial_transactions`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, type, amount_cents, COALESCE(reference, ''), COALESCE(description, ''), related_request_id, created_on
	          FROM financial_transactions ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.FinancialTransaction
	for rows.Next() {
		var t domain.FinancialTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.Reference, &t.Description, &t.RelatedRequestID, &t.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, count, rows.Err()
}

func (r *fundRepository) CreateMoneyRequest(ctx context.Context, req *domain.MoneyRequest) error {
	query := `INSERT INTO money_requests (requester_id, amount_cents, purpose, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.RequesterID, req.AmountCents, req.Purpose,
		domain.MoneyRequestStatusPending, time.Now()).Scan(&req.ID)
	if err != nil {
		return err
	}
	req.Status = domain.MoneyRequestStatusPending
	return nil
}

func (r *fundRepository) GetMoneyRequestByID(ctx context.Context, id int64) (*domain.MoneyRequest, error) {
	req := &domain.MoneyRequest{}
	query := `SELECT id, requester_id, amount_cents, COALESCE(purpose, ''), status, COALESCE(reason, ''), reviewed_by, created_on, updated_on
	          FROM money_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.RequesterID, &req.AmountCents,
		&req.Purpose, &req.Status, &req.Reason, &req.ReviewedBy, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *fundRepository) ListMoneyRequests(ctx context.Context, status domain.MoneyRequestStatus, page, pageSize int32) ([]domain.MoneyRequest, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM money_requests WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, requester_id, amount_cents, COALESCE(purpose, ''), status, COALESCE(reason, ''), reviewed_by, created_on, updated_on
	          FROM money_requests WHERE status = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.MoneyRequest
	for rows.Next() {
		var req domain.MoneyRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.AmountCents, &req.Purpose, &req.Status,
			&req.Reason, &req.ReviewedBy, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	return reqs, count, rows.Err()
}

// ApproveMoneyRequest flips the request, appends the withdrawal transaction
// and decrements the fund aggregate in one transaction. The balance guard
// rolls the whole approval back when the fund cannot cover the amount.
func (r *fundRepository) ApproveMoneyRequest(ctx context.Context, requestID, adminID int64, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var requesterID, amountCents int64
	err = tx.QueryRowContext(ctx,
		`UPDATE money_requests SET status = $1, reviewed_by = $2, updated_on = $3
		 WHERE id = $4 AND status = $5 RETURNING requester_id, amount_cents`,
		domain.MoneyRequestStatusApproved, adminID, now, requestID, domain.MoneyRequestStatusPending).Scan(&requesterID, &amountCents)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("money request %d is not pending: %w", requestID, domain.ErrAlreadyProcessed)
	}
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE fund_balance SET total_withdrawals_cents = total_withdrawals_cents + $1,
		        total_balance_cents = total_balance_cents - $1, updated_on = $2
		 WHERE total_balance_cents >= $1`,
		amountCents, now)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("fund cannot cover withdrawal of %d: %w", amountCents, domain.ErrInsufficientBalance)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO financial_transactions (user_id, type, amount_cents, description, related_request_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		requesterID, domain.TransactionTypeWithdrawal, amountCents,
		fmt.Sprintf("Approved money request %d", requestID), requestID, now)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// RejectMoneyRequest records the decision only; money requests hold no funds
// at creation, so there is nothing to refund.
func (r *fundRepository) RejectMoneyRequest(ctx context.Context, requestID, adminID int64, reason string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE money_requests SET status = $1, reason = $2, reviewed_by = $3, updated_on = $4
		 WHERE id = $5 AND status = $6`,
		domain.MoneyRequestStatusRejected, reason, adminID, now, requestID, domain.MoneyRequestStatusPending)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("money request %d is not pending: %w", requestID, domain.ErrAlreadyProcessed)
	}
	return nil
}
