package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ecoshare-backend/internal/domain"
	"ecoshare-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, role, eco_points, latitude, longitude, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.Role, u.EcoPoints, u.Latitude, u.Longitude, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, role, eco_points, latitude, longitude, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.EcoPoints, &u.Latitude, &u.Longitude, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, role, eco_points, latitude, longitude, created_on, updated_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.EcoPoints, &u.Latitude, &u.Longitude, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, name=$2, role=$3, latitude=$4, longitude=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.Role, u.Latitude, u.Longitude, time.Now(), u.ID)
	return err
}

func (r *userRepository) CreditPoints(ctx context.Context, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := creditPointsTx(ctx, tx, userID, amount, txType, relatedID, description); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *userRepository) DebitPoints(ctx context.Context, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := debitPointsTx(ctx, tx, userID, amount, txType, relatedID, description); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *userRepository) ListPointTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.PointTransaction, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM point_transactions WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, amount, type, related_id, COALESCE(description, ''), created_on
	          FROM point_transactions WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.PointTransaction
	for rows.Next() {
		var t domain.PointTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.RelatedID, &t.Description, &t.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, count, rows.Err()
}

// creditPointsTx and debitPointsTx run inside a caller-owned transaction so
// multi-row effects (hold + request, completion + reward) commit or roll back
// as one unit.
func creditPointsTx(ctx context.Context, tx *sql.Tx, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET eco_points = eco_points + $1, updated_on = $2 WHERE id = $3`,
		amount, time.Now(), userID)
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
	return insertPointTransaction(ctx, tx, userID, amount, txType, relatedID, description)
}

func debitPointsTx(ctx context.Context, tx *sql.Tx, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	// The eco_points >= amount guard is what keeps the balance non-negative
	// under concurrent debits.
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET eco_points = eco_points - $1, updated_on = $2 WHERE id = $3 AND eco_points >= $1`,
		amount, time.Now(), userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return insertPointTransaction(ctx, tx, userID, -amount, txType, relatedID, description)
}

func insertPointTransaction(ctx context.Context, tx *sql.Tx, userID, amount int64, txType domain.PointTransactionType, relatedID *int64, description string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO point_transactions (user_id, amount, type, related_id, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, amount, txType, relatedID, description, time.Now())
	return err
}
