// Package receipts stores extracted receipt records and answers the
// frequency queries that feed vendor detection on future receipts.
package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
)

// PgxPool abstracts the subset of pgxpool.Pool used by the repository to
// allow mocking in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ PgxPool = (*pgxpool.Pool)(nil)

// Receipt is a stored extraction result. Date and Amount keep their
// absent-vs-present distinction through the database round trip: absent maps
// to NULL, never to a fabricated zero.
type Receipt struct {
	ID        uuid.UUID
	Filename  string
	Vendor    string
	Date      *time.Time
	Amount    decimal.NullDecimal
	Currency  string
	Category  string
	CreatedAt time.Time
}

// Repository handles database operations for receipts.
type Repository struct {
	pgpool PgxPool
}

// NewRepository creates a new receipts repository.
func NewRepository(pgpool PgxPool) *Repository {
	return &Repository{pgpool: pgpool}
}

const insertReceiptQuery = `
	INSERT INTO receipts (id, filename, vendor, receipt_date, amount, currency, category)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at
`

// Insert persists one extraction result and returns the stored row.
func (r *Repository) Insert(ctx context.Context, record extraction.ReceiptRecord) (*Receipt, error) {
	receipt := &Receipt{
		ID:       uuid.New(),
		Filename: record.Filename,
		Vendor:   record.Vendor,
		Amount:   record.Amount,
		Currency: record.Currency,
		Category: record.Category,
	}
	if !record.Date.IsZero() {
		d := record.Date
		receipt.Date = &d
	}

	err := r.pgpool.QueryRow(ctx, insertReceiptQuery,
		receipt.ID, receipt.Filename, receipt.Vendor, receipt.Date,
		receipt.Amount, receipt.Currency, receipt.Category,
	).Scan(&receipt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert receipt: %w", err)
	}

	return receipt, nil
}

const listReceiptsQuery = `
	SELECT id, filename, vendor, receipt_date, amount, currency, category, created_at
	FROM receipts
	ORDER BY created_at DESC
`

// List returns all stored receipts, newest first.
func (r *Repository) List(ctx context.Context) ([]Receipt, error) {
	rows, err := r.pgpool.Query(ctx, listReceiptsQuery)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []Receipt
	for rows.Next() {
		var rec Receipt
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.Vendor, &rec.Date,
			&rec.Amount, &rec.Currency, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}

	return receipts, nil
}

const topVendorsQuery = `
	SELECT vendor, COUNT(*) AS freq
	FROM receipts
	GROUP BY vendor
	ORDER BY freq DESC, vendor ASC
`

// TopVendors returns vendor names ordered by descending occurrence
// frequency across all stored receipts. Equal frequencies order
// alphabetically so the snapshot is stable between refreshes. This is the
// read feeding the known-vendor step of vendor extraction; the extraction
// core itself never queries it.
func (r *Repository) TopVendors(ctx context.Context) ([]string, error) {
	rows, err := r.pgpool.Query(ctx, topVendorsQuery)
	if err != nil {
		return nil, fmt.Errorf("top vendors: %w", err)
	}
	defer rows.Close()

	var vendors []string
	for rows.Next() {
		var vendor string
		var freq int64
		if err := rows.Scan(&vendor, &freq); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}

	return vendors, nil
}
