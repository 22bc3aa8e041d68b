package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanCustomer reads a customer row joined with its quarter and plan.
// Expected column order: id, customer_code, name, primary_phone, secondary_phone,
// address, quarter_id, qtr_name, plan_id, plan_name, onu_serial, dnsn, gps_coords,
// install_date, expiry_date, status, created_at, updated_at, deleted_at
func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var statusStr string

	var secondaryPhone, onuSerial, dnsn, gps sql.NullString

	if err := s.Scan(
		&c.ID, &c.Code, &c.Name, &c.PrimaryPhone, &secondaryPhone,
		&c.Address, &c.QuarterID, &c.QuarterName, &c.PlanID, &c.PlanName,
		&onuSerial, &dnsn, &gps,
		&c.InstallDate, &c.ExpiryDate, &statusStr,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.SecondaryPhone = secondaryPhone.String
	c.ONUSerial = onuSerial.String
	c.DNSN = dnsn.String
	c.GPSCoords = gps.String
	c.Status = customer.Status(statusStr)

	return &c, nil
}

const selectCustomerColumns = `
	c.id, c.customer_code, c.name, c.primary_phone, c.secondary_phone,
	c.address, c.quarter_id, q.qtr_name, c.plan_id, p.plan_name,
	c.onu_serial, c.dnsn, c.gps_coords,
	c.install_date, c.expiry_date, c.status,
	c.created_at, c.updated_at, c.deleted_at
`

const customerJoins = `
	FROM customers c
	JOIN quarters q ON c.quarter_id = q.id
	JOIN plans p ON c.plan_id = p.id
`

const insertCustomerQuery = `
	INSERT INTO customers (customer_code, name, primary_phone, secondary_phone, address,
		quarter_id, plan_id, onu_serial, dnsn, gps_coords, install_date, expiry_date, status,
		created_at, updated_at)
	VALUES ('CUS-' || to_char(nextval('customer_code_seq'), 'FM000000'),
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	RETURNING id, customer_code, created_at, updated_at
`

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	err := s.db.QueryRowContext(ctx, insertCustomerQuery,
		c.Name, c.PrimaryPhone, c.SecondaryPhone, c.Address,
		c.QuarterID, c.PlanID, c.ONUSerial, c.DNSN, c.GPSCoords,
		c.InstallDate, c.ExpiryDate, c.Status,
	).Scan(&c.ID, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + customerJoins + `
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, search string) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + customerJoins + `
		WHERE c.deleted_at IS NULL`

	var args []any

	if search != "" {
		query += ` AND (c.customer_code ILIKE $1 OR c.name ILIKE $1 OR c.primary_phone ILIKE $1)`
		args = append(args, "%"+search+"%")
	}

	query += " ORDER BY c.customer_code ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, primary_phone = $2, secondary_phone = $3, address = $4,
			quarter_id = $5, plan_id = $6, onu_serial = $7, dnsn = $8, gps_coords = $9,
			install_date = $10, expiry_date = $11, status = $12, updated_at = NOW()
		WHERE id = $13 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.PrimaryPhone, c.SecondaryPhone, c.Address,
		c.QuarterID, c.PlanID, c.ONUSerial, c.DNSN, c.GPSCoords,
		c.InstallDate, c.ExpiryDate, c.Status,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE customers
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding an advisory lock so two
// concurrent CSV uploads cannot race each other past duplicate screening.
func (s *Store) BeginImport(ctx context.Context) (customer.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	h := fnv.New64a()
	h.Write([]byte("customer-import"))

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", int64(h.Sum64())); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []customer.CreateParams) ([]*customer.Customer, error) {
	serials := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.ONUSerial != "" {
			serials[p.ONUSerial] = struct{}{}
		}
	}

	if len(serials) == 0 {
		return nil, nil
	}

	query := `SELECT ` + selectCustomerColumns + customerJoins + `
		WHERE c.deleted_at IS NULL AND c.onu_serial IS NOT NULL`

	rows, err := itx.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		if _, found := serials[c.ONUSerial]; found {
			duplicates = append(duplicates, c)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateCustomers(ctx context.Context, customers []*customer.Customer) error {
	for _, c := range customers {
		err := itx.tx.QueryRowContext(ctx, insertCustomerQuery,
			c.Name, c.PrimaryPhone, c.SecondaryPhone, c.Address,
			c.QuarterID, c.PlanID, c.ONUSerial, c.DNSN, c.GPSCoords,
			c.InstallDate, c.ExpiryDate, c.Status,
		).Scan(&c.ID, &c.Code, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating customer: %w", err)
		}
	}

	return nil
}
