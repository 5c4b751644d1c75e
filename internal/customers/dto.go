package customers

type CreateCustomerRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Phone string  `json:"phone" validate:"required,max=50"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateCustomerRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Phone string  `json:"phone" validate:"required,max=50"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ListCustomersRequest filters by a case-insensitive substring of name or phone.
type ListCustomersRequest struct {
	Search string
}
