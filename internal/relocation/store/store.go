package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/relocation"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Relocate snapshots the customer's current location into the history
// table and applies the new location, all in one transaction.
func (s *Store) Relocate(ctx context.Context, customerID uuid.UUID, params relocation.Params) (*relocation.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current := `
		SELECT address, quarter_id, dnsn, gps_coords
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`

	var (
		oldAddress   string
		oldQuarterID uuid.UUID
		oldDNSN      sql.NullString
		oldGPS       sql.NullString
	)

	err = tx.QueryRowContext(ctx, current, customerID).
		Scan(&oldAddress, &oldQuarterID, &oldDNSN, &oldGPS)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, relocation.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("loading customer location: %w", err)
	}

	insert := `
		INSERT INTO relocation_history
			(customer_id, old_address, old_quarter_id, old_dnsn, old_gps,
			 new_address, new_quarter_id, new_dnsn, new_gps, remark, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, moved_at
	`

	rec := &relocation.Record{
		CustomerID:   customerID,
		OldAddress:   oldAddress,
		OldQuarterID: oldQuarterID,
		OldDNSN:      oldDNSN.String,
		OldGPS:       oldGPS.String,
		NewAddress:   params.NewAddress,
		NewQuarterID: params.NewQuarterID,
		NewDNSN:      params.NewDNSN,
		NewGPS:       params.NewGPS,
		Remark:       params.Remark,
	}

	err = tx.QueryRowContext(ctx, insert,
		customerID, oldAddress, oldQuarterID, oldDNSN.String, oldGPS.String,
		params.NewAddress, params.NewQuarterID, params.NewDNSN, params.NewGPS, params.Remark,
	).Scan(&rec.ID, &rec.MovedAt)
	if err != nil {
		return nil, fmt.Errorf("recording relocation: %w", err)
	}

	apply := `
		UPDATE customers
		SET address = $1, quarter_id = $2, dnsn = $3, gps_coords = $4, updated_at = NOW()
		WHERE id = $5
	`

	if _, err := tx.ExecContext(ctx, apply,
		params.NewAddress, params.NewQuarterID, params.NewDNSN, params.NewGPS, customerID,
	); err != nil {
		return nil, fmt.Errorf("applying new location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing relocation: %w", err)
	}

	return rec, nil
}

const selectRecordColumns = `
	r.id, r.customer_id, c.customer_code, c.name,
	r.old_address, r.old_quarter_id, oq.qtr_name, r.old_dnsn, r.old_gps,
	r.new_address, r.new_quarter_id, nq.qtr_name, r.new_dnsn, r.new_gps,
	r.remark, r.moved_at
`

const recordJoins = `
	FROM relocation_history r
	JOIN customers c ON r.customer_id = c.id
	JOIN quarters oq ON r.old_quarter_id = oq.id
	JOIN quarters nq ON r.new_quarter_id = nq.id
`

func scanRecord(rows *sql.Rows) (*relocation.Record, error) {
	var rec relocation.Record

	var oldDNSN, oldGPS, newDNSN, newGPS, remark sql.NullString

	if err := rows.Scan(
		&rec.ID, &rec.CustomerID, &rec.CustomerCode, &rec.CustomerName,
		&rec.OldAddress, &rec.OldQuarterID, &rec.OldQuarterName, &oldDNSN, &oldGPS,
		&rec.NewAddress, &rec.NewQuarterID, &rec.NewQuarterName, &newDNSN, &newGPS,
		&remark, &rec.MovedAt,
	); err != nil {
		return nil, err
	}

	rec.OldDNSN = oldDNSN.String
	rec.OldGPS = oldGPS.String
	rec.NewDNSN = newDNSN.String
	rec.NewGPS = newGPS.String
	rec.Remark = remark.String

	return &rec, nil
}

func (s *Store) ListHistory(ctx context.Context) ([]*relocation.Record, error) {
	query := `SELECT ` + selectRecordColumns + recordJoins + ` ORDER BY r.moved_at DESC`

	return s.queryRecords(ctx, query)
}

func (s *Store) ListCustomerHistory(ctx context.Context, customerID uuid.UUID) ([]*relocation.Record, error) {
	query := `SELECT ` + selectRecordColumns + recordJoins + `
		WHERE r.customer_id = $1
		ORDER BY r.moved_at DESC`

	return s.queryRecords(ctx, query, customerID)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]*relocation.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing relocation history: %w", err)
	}
	defer rows.Close()

	var records []*relocation.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning relocation record: %w", err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
