//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"time"

	"salepoint/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed identities so tests can reference seeded rows directly.
var (
	AdminID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	CashierID = uuid.MustParse("22222222-2222-2222-2222-222222222222")

	ProductAID       = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	ProductBID       = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	ScarceProductID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003")
	HaircutServiceID = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
)

const (
	AdminEmail      = "admin@salepoint.test"
	CashierEmail    = "cashier@salepoint.test"
	DefaultPassword = "password123"

	ProductAPrice      = "500.00"  // stock 10
	ProductBPrice      = "1500.00" // stock 10
	ScarceProductPrice = "800.00"  // stock 3
	HaircutPrice       = "1500.00"
)

// SeedReferenceData inserts the workers and catalog rows every e2e
// suite relies on.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := password.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("failed to hash fixture password: %w", err)
	}

	stmts := []struct {
		sql  string
		args []any
	}{
		{
			sql: `INSERT INTO workers (id, username, email, password_hash, role, active)
			      VALUES ($1, 'admin', $2, $3, 'admin', TRUE)`,
			args: []any{AdminID, AdminEmail, hash},
		},
		{
			sql: `INSERT INTO workers (id, username, email, password_hash, role, active)
			      VALUES ($1, 'cashier', $2, $3, 'worker', TRUE)`,
			args: []any{CashierID, CashierEmail, hash},
		},
		{
			sql:  `INSERT INTO products (id, name, price, stock, created_by) VALUES ($1, 'Hair Gel', $2::numeric, 10, $3)`,
			args: []any{ProductAID, ProductAPrice, AdminID},
		},
		{
			sql:  `INSERT INTO products (id, name, price, stock, created_by) VALUES ($1, 'Clipper Set', $2::numeric, 10, $3)`,
			args: []any{ProductBID, ProductBPrice, AdminID},
		},
		{
			sql:  `INSERT INTO products (id, name, price, stock, created_by) VALUES ($1, 'Premium Shampoo', $2::numeric, 3, $3)`,
			args: []any{ScarceProductID, ScarceProductPrice, AdminID},
		},
		{
			sql:  `INSERT INTO services (id, name, price, created_by) VALUES ($1, 'Haircut', $2::numeric, $3)`,
			args: []any{HaircutServiceID, HaircutPrice, AdminID},
		},
	}

	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s.sql, s.args...); err != nil {
			return fmt.Errorf("failed to seed fixture: %w", err)
		}
	}
	return nil
}

// ResetDB truncates mutable state, rewinds the receipt counter and
// reseeds the reference rows.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, `
		TRUNCATE transactions, expenditures, submissions, worker_shifts, products, services, workers CASCADE
	`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	if _, err := pool.Exec(ctx, `UPDATE receipt_counter SET counter = 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reset receipt counter: %w", err)
	}
	return SeedReferenceData(pool)
}

// ProductStock reads the current stock for a product.
func ProductStock(pool *pgxpool.Pool, id uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stock int
	err := pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock)
	return stock, err
}

// TransactionCount counts persisted sale transactions.
func TransactionCount(pool *pgxpool.Pool) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM transactions`).Scan(&n)
	return n, err
}
