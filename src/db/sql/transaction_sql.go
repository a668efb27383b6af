package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

// Store runs transaction queries against postgres. Handlers depend on the
// TransactionStore interface in the handlers package so tests can swap this
// out for an in-memory fake.
type Store struct {
	Pool *pgxpool.Pool
}

func (s *Store) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, amount, description, category, type, date, time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, amount, description, category, type, date, time, created_at
	`
	var created models.Transaction
	err := s.Pool.QueryRow(ctx, query,
		uuid.NewString(), txn.UserID, txn.Amount, txn.Description, txn.Category, txn.Type, txn.Date, txn.Time).
		Scan(&created.ID, &created.UserID, &created.Amount, &created.Description,
			&created.Category, &created.Type, &created.Date, &created.Time, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RecentByUser returns the user's newest transactions by creation time.
func (s *Store) RecentByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, description, category, type, date, time, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ByUserSince returns the user's transactions with date >= since, ordered
// ascending by date so the aggregation fold emits chronological buckets.
// A nil since means no lower bound.
func (s *Store) ByUserSince(ctx context.Context, userID string, since *time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, description, category, type, date, time, created_at
		FROM transactions
		WHERE user_id = $1 AND ($2::timestamptz IS NULL OR date >= $2)
		ORDER BY date ASC, created_at ASC
	`
	rows, err := s.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description,
			&t.Category, &t.Type, &t.Date, &t.Time, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
