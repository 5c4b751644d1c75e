package billing

//go:generate mockgen -source=service.go -destination=mock_metrics_test.go -package=billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rushi-salon/salon/internal/shared"
)

// Metrics receives billing events.
type Metrics interface {
	BillCreated(status string)
}

type nopMetrics struct{}

func (nopMetrics) BillCreated(string) {}

// Calculator prices bills against the live catalog and persists them.
type Calculator struct {
	repo      Repository
	services  ServiceLookup
	customers CustomerLookup
	metrics   Metrics
	now       func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMetrics reports created bills to m.
func WithMetrics(m Metrics) Option {
	return func(c *Calculator) {
		if m != nil {
			c.metrics = m
		}
	}
}

func NewCalculator(repo Repository, services ServiceLookup, customers CustomerLookup, opts ...Option) *Calculator {
	c := &Calculator{
		repo:      repo,
		services:  services,
		customers: customers,
		metrics:   nopMetrics{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateBill resolves every line against the catalog, sums price times
// quantity and stores the bill. A line whose service does not resolve fails
// the whole call and nothing is written. The customer id is stored as given.
func (c *Calculator) CreateBill(ctx context.Context, req CreateBillRequest, actor string) (*Bill, error) {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.Status = strings.TrimSpace(req.Status)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}
	if actor == "" {
		actor = shared.UnknownActor
	}

	total := decimal.Zero
	lines := make([]LineItem, 0, len(req.Lines))
	for i, l := range req.Lines {
		svc, err := c.services.Get(ctx, l.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("line %d service %s: %w", i+1, l.ServiceID, err)
		}
		total = total.Add(svc.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		lines = append(lines, LineItem{ServiceID: l.ServiceID, Quantity: l.Quantity})
	}

	bill := Bill{
		CustomerID:  req.CustomerID,
		Lines:       lines,
		TotalAmount: total,
		Status:      req.Status,
		CreatedAt:   c.now().UTC(),
		CreatedBy:   actor,
	}
	id, err := c.repo.Create(ctx, bill)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	bill.ID = id
	c.metrics.BillCreated(bill.Status)
	return &bill, nil
}

// UpdateStatus is the only change a bill accepts after creation.
func (c *Calculator) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Bill, error) {
	req.Status = strings.TrimSpace(req.Status)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := c.repo.Update(ctx, id, map[string]any{"status": req.Status}); err != nil {
		return nil, fmt.Errorf("update bill %s status: %w", id, err)
	}
	return c.Get(ctx, id)
}

func (c *Calculator) Get(ctx context.Context, id string) (*Bill, error) {
	bill, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bill %s: %w", id, err)
	}
	return bill, nil
}

// List returns bills newest first.
func (c *Calculator) List(ctx context.Context, req ListBillsRequest) ([]Bill, error) {
	return c.repo.List(ctx, req)
}

// ListDetailed resolves customer and service names for display. References
// that no longer resolve get placeholders; any other lookup error fails.
func (c *Calculator) ListDetailed(ctx context.Context, req ListBillsRequest) ([]BillView, error) {
	bills, err := c.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	views := make([]BillView, 0, len(bills))
	for _, b := range bills {
		v, err := c.view(ctx, b)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// CustomerName returns the customer's name or UnknownCustomer.
func (c *Calculator) CustomerName(ctx context.Context, id string) (string, error) {
	cust, err := c.customers.Get(ctx, id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return UnknownCustomer, nil
	case err != nil:
		return "", fmt.Errorf("customer %s: %w", id, err)
	}
	return cust.Name, nil
}

func (c *Calculator) view(ctx context.Context, b Bill) (BillView, error) {
	name, err := c.CustomerName(ctx, b.CustomerID)
	if err != nil {
		return BillView{}, err
	}
	v := BillView{Bill: b, CustomerName: name, Lines: make([]LineView, 0, len(b.Lines))}
	for _, l := range b.Lines {
		lv := LineView{LineItem: l, Name: UnknownService, Price: decimal.Zero}
		svc, err := c.services.Get(ctx, l.ServiceID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
		case err != nil:
			return BillView{}, fmt.Errorf("service %s: %w", l.ServiceID, err)
		default:
			lv.Name = svc.Name
			lv.Price = svc.Price
		}
		v.Lines = append(v.Lines, lv)
	}
	return v, nil
}

func (c *Calculator) Count(ctx context.Context) (int, error) {
	return c.repo.Count(ctx)
}

// SumTotals adds the stored totals of bills in the given status.
func (c *Calculator) SumTotals(ctx context.Context, status string) (decimal.Decimal, error) {
	return c.repo.SumTotals(ctx, status)
}
