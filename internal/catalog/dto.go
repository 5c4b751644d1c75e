package catalog

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description" validate:"max=2000"`
}

type UpdateServiceRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description" validate:"max=2000"`
}

type ListServicesRequest struct {
	Search string
}
