package billing

type LineRequest struct {
	ServiceID string `json:"id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,max=10000"`
}

type CreateBillRequest struct {
	CustomerID string        `json:"customer_id" validate:"required"`
	Lines      []LineRequest `json:"services" validate:"required,min=1,dive"`
	Status     string        `json:"status" validate:"required,max=50"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type ListBillsRequest struct {
	Status string
	// Limit caps the result; zero means no cap.
	Limit int
}
