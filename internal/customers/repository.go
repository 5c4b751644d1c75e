package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rushi-salon/salon/internal/platform/db"
	"github.com/rushi-salon/salon/internal/shared"
)

// Repository is the record store for customers.
type Repository interface {
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, error)
	Create(ctx context.Context, customer Customer) (string, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = "id::text, name, phone, email, created_at"

func (r *repository) Get(ctx context.Context, id string) (*Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, shared.ErrNotFound
	}
	c, err := scanCustomer(r.pool.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id))
	if err != nil {
		return nil, db.Classify(err)
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers"
	var args []any
	if s := strings.TrimSpace(req.Search); s != "" {
		query += " WHERE name ILIKE $1 OR phone ILIKE $1"
		args = append(args, db.ContainsPattern(s))
	}
	query += " ORDER BY name, created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, db.Classify(err)
		}
		customers = append(customers, *c)
	}
	return customers, db.Classify(rows.Err())
}

func (r *repository) Create(ctx context.Context, customer Customer) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO customers (id, name, phone, email, created_at) VALUES ($1, $2, $3, $4, $5)",
		id, customer.Name, customer.Phone, customer.Email, customer.CreatedAt,
	)
	if err != nil {
		return "", db.Classify(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id string, updates map[string]any) error {
	if _, err := uuid.Parse(id); err != nil {
		return shared.ErrNotFound
	}
	var sets []string
	var args []any
	argPos := 1
	for _, field := range []string{"name", "phone", "email"} {
		v, ok := updates[field]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", field, argPos))
		args = append(args, v)
		argPos++
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return shared.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
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
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		return 0, db.Classify(err)
	}
	return n, nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	var email pgtype.Text
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &email, &c.CreatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		c.Email = &email.String
	}
	return &c, nil
}
