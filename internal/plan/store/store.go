package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/plan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePlan(ctx context.Context, p *plan.Plan) error {
	query := `
		INSERT INTO plans (plan_name, speed, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, p.Name, p.Speed, p.Price, p.Active).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating plan: %w", err)
	}

	return nil
}

func (s *Store) GetPlan(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	query := `
		SELECT id, plan_name, speed, price, active, created_at, updated_at
		FROM plans
		WHERE id = $1
	`

	var p plan.Plan

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Speed, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, plan.ErrNotFound
		}

		return nil, fmt.Errorf("getting plan: %w", err)
	}

	return &p, nil
}

func (s *Store) UpdatePlan(ctx context.Context, p *plan.Plan) error {
	query := `
		UPDATE plans
		SET plan_name = $1, speed = $2, price = $3, active = $4, updated_at = NOW()
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, p.Name, p.Speed, p.Price, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return plan.ErrNotFound
	}

	return nil
}

func (s *Store) ListPlans(ctx context.Context) ([]*plan.Plan, error) {
	query := `
		SELECT id, plan_name, speed, price, active, created_at, updated_at
		FROM plans
		ORDER BY plan_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*plan.Plan

	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Speed, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}

		plans = append(plans, &p)
	}

	return plans, rows.Err()
}

// DeletePlan refuses to remove a plan that customers still reference.
// The in-use check is part of the DELETE itself so a customer created
// concurrently cannot slip in between a separate check and the delete.
func (s *Store) DeletePlan(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM plans
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM customers WHERE plan_id = $1 AND deleted_at IS NULL)
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	if n > 0 {
		return nil
	}

	// Nothing deleted: either the plan is in use or it never existed.
	var inUse bool

	check := `SELECT EXISTS (SELECT 1 FROM customers WHERE plan_id = $1 AND deleted_at IS NULL)`
	if err := s.db.QueryRowContext(ctx, check, id).Scan(&inUse); err != nil {
		return fmt.Errorf("checking plan usage: %w", err)
	}

	if inUse {
		return plan.ErrInUse
	}

	return plan.ErrNotFound
}
