package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/invoice"
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

// scanInvoice reads an invoice header row joined with its customer.
// Expected column order: id, invoice_no, customer_id, customer_code, customer_name,
// invoice_date, sub_total, discount_amount, total_amount, status, remark, created_at, updated_at
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	var remark sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.Number,
		&inv.Customer.ID, &inv.Customer.Code, &inv.Customer.Name,
		&inv.Date, &inv.SubTotal, &inv.DiscountAmount, &inv.TotalAmount,
		&statusStr, &remark,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)
	inv.Remark = remark.String

	return &inv, nil
}

const selectInvoiceColumns = `
	i.id, i.invoice_no, i.customer_id, c.customer_code, c.name,
	i.invoice_date, i.sub_total, i.discount_amount, i.total_amount,
	i.status, i.remark, i.created_at, i.updated_at
`

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (invoice_no, customer_id, invoice_date, sub_total, discount_amount, total_amount, status, remark, created_at, updated_at)
		VALUES ('INV-' || to_char(nextval('invoice_no_seq'), 'FM000000'), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, invoice_no, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		inv.Customer.ID,
		inv.Date,
		inv.SubTotal,
		inv.DiscountAmount,
		inv.TotalAmount,
		inv.Status,
		inv.Remark,
	).Scan(&inv.ID, &inv.Number, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	if err := insertItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

// UpdateInvoice rewrites the header and the full item list in one
// transaction, so a partially applied edit is never visible.
func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE invoices
		SET customer_id = $1, invoice_date = $2, sub_total = $3, discount_amount = $4,
			total_amount = $5, status = $6, remark = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING invoice_no
	`

	err = tx.QueryRowContext(ctx, query,
		inv.Customer.ID,
		inv.Date,
		inv.SubTotal,
		inv.DiscountAmount,
		inv.TotalAmount,
		inv.Status,
		inv.Remark,
		inv.ID,
	).Scan(&inv.Number)
	if err != nil {
		if err == sql.ErrNoRows {
			return invoice.ErrNotFound
		}

		return fmt.Errorf("updating invoice: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return fmt.Errorf("clearing invoice items: %w", err)
	}

	if err := insertItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, invoiceID uuid.UUID, items []invoice.LineItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, position, description, period_start, period_end, qty, unit_price, item_discount, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for pos, item := range items {
		_, err := tx.ExecContext(ctx, query,
			invoiceID,
			pos,
			item.Description,
			item.PeriodStart,
			item.PeriodEnd,
			item.Quantity,
			item.UnitPrice,
			item.ItemDiscount,
			item.Amount(),
		)
		if err != nil {
			return fmt.Errorf("inserting invoice item %d: %w", pos, err)
		}
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		WHERE i.id = $1 AND i.deleted_at IS NULL`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if err := s.loadItems(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, search string) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		WHERE i.deleted_at IS NULL`

	var args []any

	if search != "" {
		query += ` AND (i.invoice_no ILIKE $1 OR c.name ILIKE $1 OR c.customer_code ILIKE $1)`
		args = append(args, "%"+search+"%")
	}

	query += " ORDER BY i.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	// The edit form needs line items up front, and the lists involved are
	// tens of rows, so the per-invoice query is fine here.
	for _, inv := range invs {
		if err := s.loadItems(ctx, inv); err != nil {
			return nil, err
		}
	}

	return invs, nil
}

func (s *Store) loadItems(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		SELECT description, period_start, period_end, qty, unit_price, item_discount
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, inv.ID)
	if err != nil {
		return fmt.Errorf("loading invoice items: %w", err)
	}
	defer rows.Close()

	inv.Items = inv.Items[:0]

	for rows.Next() {
		var item invoice.LineItem
		if err := rows.Scan(
			&item.Description, &item.PeriodStart, &item.PeriodEnd,
			&item.Quantity, &item.UnitPrice, &item.ItemDiscount,
		); err != nil {
			return fmt.Errorf("scanning invoice item: %w", err)
		}

		inv.Items = append(inv.Items, item)
	}

	return rows.Err()
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE invoices
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}
