// Package billing prices bills from the current service catalog and keeps
// them in the record store.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known bill statuses. Any other non-empty status is stored as given.
const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
)

// Placeholders used when a weak reference no longer resolves.
const (
	UnknownCustomer = "Unknown"
	UnknownService  = "Unknown"
)

// LineItem references a service by id. The price is not copied onto the
// line; readers resolve it again from the catalog.
type LineItem struct {
	ServiceID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// Bill is created once; afterwards only Status changes. TotalAmount is the
// sum computed at creation time and is never recomputed.
type Bill struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Lines       []LineItem      `json:"services"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
}

// BillView is a bill with its weak references resolved for listings.
type BillView struct {
	Bill
	CustomerName string     `json:"customer_name"`
	Lines        []LineView `json:"services"`
}

// LineView is a line item with the service's current name and price.
type LineView struct {
	LineItem
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
