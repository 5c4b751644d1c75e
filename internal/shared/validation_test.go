package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Qty   int     `json:"quantity" validate:"gte=1"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	bad := "not-an-email"
	err := ValidateStruct(sampleRequest{Email: &bad})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "quantity must be at least 1")
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleRequest{Name: "Asha", Qty: 2}))
}
