package billing

//go:generate mockgen -source=repository.go -destination=mock_repository_test.go -package=billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rushi-salon/salon/internal/catalog"
	"github.com/rushi-salon/salon/internal/customers"
	"github.com/rushi-salon/salon/internal/platform/db"
	"github.com/rushi-salon/salon/internal/shared"
)

// Repository is the record store for bills.
type Repository interface {
	Get(ctx context.Context, id string) (*Bill, error)
	List(ctx context.Context, req ListBillsRequest) ([]Bill, error)
	Create(ctx context.Context, bill Bill) (string, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Count(ctx context.Context) (int, error)
	SumTotals(ctx context.Context, status string) (decimal.Decimal, error)
}

// ServiceLookup resolves catalog entries by id.
type ServiceLookup interface {
	Get(ctx context.Context, id string) (*catalog.Service, error)
}

// CustomerLookup resolves customers by id.
type CustomerLookup interface {
	Get(ctx context.Context, id string) (*customers.Customer, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const billColumns = "id::text, customer_id, total_amount, status, created_at, created_by"

func (r *repository) Get(ctx context.Context, id string) (*Bill, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, shared.ErrNotFound
	}
	bill, err := scanBill(r.pool.QueryRow(ctx, "SELECT "+billColumns+" FROM bills WHERE id = $1", id))
	if err != nil {
		return nil, db.Classify(err)
	}
	lines, err := r.lines(ctx, []string{bill.ID})
	if err != nil {
		return nil, err
	}
	bill.Lines = lines[bill.ID]
	return bill, nil
}

func (r *repository) List(ctx context.Context, req ListBillsRequest) ([]Bill, error) {
	query := "SELECT " + billColumns + " FROM bills"
	var args []any
	if req.Status != "" {
		query += " WHERE status = $1"
		args = append(args, req.Status)
	}
	query += " ORDER BY created_at DESC, id"
	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", req.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	var bills []Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, db.Classify(err)
		}
		bills = append(bills, *bill)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	if len(bills) == 0 {
		return bills, nil
	}

	ids := make([]string, len(bills))
	for i := range bills {
		ids[i] = bills[i].ID
	}
	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		bills[i].Lines = lines[bills[i].ID]
	}
	return bills, nil
}

// Create stores the bill header and its lines as one unit.
func (r *repository) Create(ctx context.Context, bill Bill) (string, error) {
	id := uuid.NewString()
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO bills (id, customer_id, total_amount, status, created_at, created_by) VALUES ($1, $2, $3, $4, $5, $6)",
			id, bill.CustomerID, bill.TotalAmount, bill.Status, bill.CreatedAt, bill.CreatedBy,
		)
		if err != nil {
			return db.Classify(err)
		}
		batch := &pgx.Batch{}
		for i, line := range bill.Lines {
			batch.Queue("INSERT INTO bill_lines (bill_id, line_no, service_id, quantity) VALUES ($1, $2, $3, $4)",
				id, i, line.ServiceID, line.Quantity)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return db.Classify(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update applies field-level changes. Only status is mutable.
func (r *repository) Update(ctx context.Context, id string, updates map[string]any) error {
	if _, err := uuid.Parse(id); err != nil {
		return shared.ErrNotFound
	}
	var sets []string
	var args []any
	for field, v := range updates {
		if field != "status" {
			return fmt.Errorf("%w: bill field %q is immutable", shared.ErrValidation, field)
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE bills SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM bills").Scan(&n); err != nil {
		return 0, db.Classify(err)
	}
	return n, nil
}

func (r *repository) SumTotals(ctx context.Context, status string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, "SELECT COALESCE(SUM(total_amount), 0) FROM bills WHERE status = $1", status).Scan(&total)
	if err != nil {
		return decimal.Zero, db.Classify(err)
	}
	return total, nil
}

func (r *repository) lines(ctx context.Context, billIDs []string) (map[string][]LineItem, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT bill_id::text, service_id, quantity FROM bill_lines WHERE bill_id = ANY($1::uuid[]) ORDER BY bill_id, line_no",
		billIDs,
	)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	out := make(map[string][]LineItem, len(billIDs))
	for rows.Next() {
		var billID string
		var line LineItem
		if err := rows.Scan(&billID, &line.ServiceID, &line.Quantity); err != nil {
			return nil, db.Classify(err)
		}
		out[billID] = append(out[billID], line)
	}
	return out, db.Classify(rows.Err())
}

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	if err := row.Scan(&b.ID, &b.CustomerID, &b.TotalAmount, &b.Status, &b.CreatedAt, &b.CreatedBy); err != nil {
		return nil, err
	}
	return &b, nil
}
