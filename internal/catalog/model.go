// Package catalog manages the salon's offerings (haircuts, colouring, ...),
// called services throughout the back office.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a priced offering that bills reference by id.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
