package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rushi-salon/salon/internal/shared"
)

// Manager wraps the business rules around service records.
type Manager struct {
	repo Repository
	now  func() time.Time
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

func (m *Manager) Create(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}
	price, err := normalizePrice(*req.Price)
	if err != nil {
		return nil, err
	}

	svc := Service{
		Name:        req.Name,
		Price:       price,
		Description: req.Description,
		CreatedAt:   m.now().UTC(),
	}
	id, err := m.repo.Create(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	svc.ID = id
	return &svc, nil
}

// Update replaces name, price and description. Bills keep referencing the
// service by id, so invoices rendered afterwards show the new name and price.
func (m *Manager) Update(ctx context.Context, id string, req UpdateServiceRequest) (*Service, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}
	price, err := normalizePrice(*req.Price)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":        req.Name,
		"price":       price,
		"description": req.Description,
	}
	if err := m.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update service %s: %w", id, err)
	}
	return m.repo.Get(ctx, id)
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	return nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Service, error) {
	svc, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", id, err)
	}
	return svc, nil
}

func (m *Manager) List(ctx context.Context, req ListServicesRequest) ([]Service, error) {
	return m.repo.List(ctx, req)
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.repo.Count(ctx)
}

// normalizePrice rounds to the two places the store keeps, so the returned
// service and later bill totals agree with what was persisted.
func normalizePrice(p decimal.Decimal) (decimal.Decimal, error) {
	if p.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", shared.ErrValidation)
	}
	return p.Round(2), nil
}
