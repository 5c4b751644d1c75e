package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rushi-salon/salon/internal/billing"
	"github.com/rushi-salon/salon/internal/shared"
)

// Placeholders printed when a weak reference no longer resolves.
const (
	UnknownCustomer = "Unknown customer"
	UnknownService  = "Unknown service"
)

// ContentTypePDF is the media type of every rendered invoice.
const ContentTypePDF = "application/pdf"

// BillSource loads stored bills. Resolve adds the bill id to its errors, so
// pass the repository rather than something that already does.
type BillSource interface {
	Get(ctx context.Context, id string) (*billing.Bill, error)
}

// Renderer turns a layout into document bytes.
type Renderer interface {
	Render(ctx context.Context, l Layout) ([]byte, error)
}

// Metrics receives render outcomes.
type Metrics interface {
	InvoiceRendered(result string)
}

type nopMetrics struct{}

func (nopMetrics) InvoiceRendered(string) {}

// Document is a named attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Service resolves a bill into an Invoice and renders it.
type Service struct {
	bills     BillSource
	services  billing.ServiceLookup
	customers billing.CustomerLookup
	renderer  Renderer
	salonName string
	metrics   Metrics
}

// Option configures a Service.
type Option func(*Service)

func WithSalonName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.salonName = name
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewService(bills BillSource, services billing.ServiceLookup, customers billing.CustomerLookup, renderer Renderer, opts ...Option) *Service {
	s := &Service{
		bills:     bills,
		services:  services,
		customers: customers,
		renderer:  renderer,
		salonName: "Rushi Salon",
		metrics:   nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render produces bill_<id>.pdf. A missing bill fails; a missing customer or
// service is printed with a placeholder. Rendering never writes.
func (s *Service) Render(ctx context.Context, billID string) (*Document, error) {
	doc, err := s.render(ctx, billID)
	if err != nil {
		s.metrics.InvoiceRendered("error")
		return nil, err
	}
	s.metrics.InvoiceRendered("ok")
	return doc, nil
}

func (s *Service) render(ctx context.Context, billID string) (*Document, error) {
	inv, err := s.Resolve(ctx, billID)
	if err != nil {
		return nil, err
	}
	body, err := s.renderer.Render(ctx, BuildLayout(*inv))
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", billID, err)
	}
	return &Document{
		Filename:    "bill_" + inv.BillID + ".pdf",
		ContentType: ContentTypePDF,
		Body:        body,
	}, nil
}

// Resolve loads the bill and its references as they are now.
func (s *Service) Resolve(ctx context.Context, billID string) (*Invoice, error) {
	bill, err := s.bills.Get(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("bill %s: %w", billID, err)
	}

	inv := &Invoice{
		SalonName:    s.salonName,
		BillID:       bill.ID,
		CreatedAt:    bill.CreatedAt,
		CustomerName: UnknownCustomer,
		Total:        bill.TotalAmount,
		Status:       bill.Status,
		Lines:        make([]Line, 0, len(bill.Lines)),
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Unix(0, 0).UTC()
	}

	cust, err := s.customers.Get(ctx, bill.CustomerID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("customer %s: %w", bill.CustomerID, err)
	default:
		inv.CustomerName = cust.Name
		inv.CustomerPhone = cust.Phone
	}

	for _, item := range bill.Lines {
		line := Line{Name: UnknownService, Quantity: item.Quantity, Amount: decimal.Zero}
		svc, err := s.services.Get(ctx, item.ServiceID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("service %s: %w", item.ServiceID, err)
		default:
			line.Name = svc.Name
			line.Amount = svc.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		inv.Lines = append(inv.Lines, line)
	}
	return inv, nil
}
