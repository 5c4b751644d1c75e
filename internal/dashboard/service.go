// Package dashboard summarises the record store for the front desk.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rushi-salon/salon/internal/billing"
)

// RecentLimit is how many bills the summary lists.
const RecentLimit = 5

const requestTimeout = 2 * time.Second

// Counter reports the size of a collection.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// BillStats is the billing surface the dashboard reads.
type BillStats interface {
	Counter
	SumTotals(ctx context.Context, status string) (decimal.Decimal, error)
	ListDetailed(ctx context.Context, req billing.ListBillsRequest) ([]billing.BillView, error)
}

// Summary is the dashboard payload.
type Summary struct {
	TotalCustomers int                `json:"total_customers"`
	TotalServices  int                `json:"total_services"`
	TotalBills     int                `json:"total_bills"`
	TotalEarnings  decimal.Decimal    `json:"total_earnings"`
	RecentBills    []billing.BillView `json:"recent_bills"`
}

type Service struct {
	customers Counter
	services  Counter
	bills     BillStats
}

func NewService(customers, services Counter, bills BillStats) *Service {
	return &Service{customers: customers, services: services, bills: bills}
}

// Summary gathers every figure concurrently. Earnings add up the stored
// totals of paid bills only.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var out Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.customers.Count(ctx)
		out.TotalCustomers = n
		return err
	})
	g.Go(func() error {
		n, err := s.services.Count(ctx)
		out.TotalServices = n
		return err
	})
	g.Go(func() error {
		n, err := s.bills.Count(ctx)
		out.TotalBills = n
		return err
	})
	g.Go(func() error {
		total, err := s.bills.SumTotals(ctx, billing.StatusPaid)
		out.TotalEarnings = total
		return err
	})
	g.Go(func() error {
		recent, err := s.bills.ListDetailed(ctx, billing.ListBillsRequest{Limit: RecentLimit})
		out.RecentBills = recent
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.RecentBills == nil {
		out.RecentBills = []billing.BillView{}
	}
	return &out, nil
}
