package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/quarter"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateQuarter(ctx context.Context, q *quarter.Quarter) error {
	query := `
		INSERT INTO quarters (qtr_name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, q.Name).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating quarter: %w", err)
	}

	return nil
}

func (s *Store) UpdateQuarter(ctx context.Context, q *quarter.Quarter) error {
	query := `
		UPDATE quarters
		SET qtr_name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, q.Name, q.ID).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return quarter.ErrNotFound
		}

		return fmt.Errorf("updating quarter: %w", err)
	}

	return nil
}

func (s *Store) ListQuarters(ctx context.Context) ([]*quarter.Quarter, error) {
	query := `
		SELECT id, qtr_name, created_at, updated_at
		FROM quarters
		ORDER BY qtr_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing quarters: %w", err)
	}
	defer rows.Close()

	var quarters []*quarter.Quarter

	for rows.Next() {
		var q quarter.Quarter
		if err := rows.Scan(&q.ID, &q.Name, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning quarter: %w", err)
		}

		quarters = append(quarters, &q)
	}

	return quarters, rows.Err()
}

// DeleteQuarter refuses to remove a zone that customers are still
// installed in. The in-use check is part of the DELETE itself so a
// customer created concurrently cannot slip in between a separate
// check and the delete.
func (s *Store) DeleteQuarter(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM quarters
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM customers WHERE quarter_id = $1 AND deleted_at IS NULL)
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting quarter: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting quarter: %w", err)
	}

	if n > 0 {
		return nil
	}

	// Nothing deleted: either the quarter is in use or it never existed.
	var inUse bool

	check := `SELECT EXISTS (SELECT 1 FROM customers WHERE quarter_id = $1 AND deleted_at IS NULL)`
	if err := s.db.QueryRowContext(ctx, check, id).Scan(&inUse); err != nil {
		return fmt.Errorf("checking quarter usage: %w", err)
	}

	if inUse {
		return quarter.ErrInUse
	}

	return quarter.ErrNotFound
}
