package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rushi-salon/salon/internal/platform/db"
	"github.com/rushi-salon/salon/internal/shared"
)

// Repository is the record store for services.
type Repository interface {
	Get(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, req ListServicesRequest) ([]Service, error)
	Create(ctx context.Context, svc Service) (string, error)
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

const serviceColumns = "id::text, name, price, description, created_at"

// updatable maps accepted field names to their columns.
var updatable = map[string]string{
	"name":        "name",
	"price":       "price",
	"description": "description",
}

func (r *repository) Get(ctx context.Context, id string) (*Service, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, shared.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, "SELECT "+serviceColumns+" FROM services WHERE id = $1", id)
	svc, err := scanService(row)
	if err != nil {
		return nil, db.Classify(err)
	}
	return svc, nil
}

func (r *repository) List(ctx context.Context, req ListServicesRequest) ([]Service, error) {
	query := "SELECT " + serviceColumns + " FROM services"
	var args []any
	if s := strings.TrimSpace(req.Search); s != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, db.ContainsPattern(s))
	}
	query += " ORDER BY name, created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, db.Classify(err)
		}
		services = append(services, *svc)
	}
	return services, db.Classify(rows.Err())
}

func (r *repository) Create(ctx context.Context, svc Service) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO services (id, name, price, description, created_at) VALUES ($1, $2, $3, $4, $5)",
		id, svc.Name, svc.Price, svc.Description, svc.CreatedAt,
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
	if len(updates) == 0 {
		return nil
	}
	sets := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+1)
	argPos := 1
	// Iterate the whitelist so the statement shape is stable.
	for _, field := range []string{"name", "price", "description"} {
		v, ok := updates[field]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", updatable[field], argPos))
		args = append(args, v)
		argPos++
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: no updatable fields", shared.ErrValidation)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE services SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)

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
	tag, err := r.pool.Exec(ctx, "DELETE FROM services WHERE id = $1", id)
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
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM services").Scan(&n); err != nil {
		return 0, db.Classify(err)
	}
	return n, nil
}

func scanService(row pgx.Row) (*Service, error) {
	var svc Service
	if err := row.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.Description, &svc.CreatedAt); err != nil {
		return nil, err
	}
	return &svc, nil
}
