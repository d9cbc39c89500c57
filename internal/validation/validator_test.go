package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

type ruleRequest struct {
	Field    string `json:"field" validate:"required,rulefield"`
	Operator string `json:"operator" validate:"required,ruleoperator"`
	Value    string `json:"value" validate:"required"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := ruleRequest{
		Field:    "category",
		Operator: "EQUALS",
		Value:    "Jackets",
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name string
		req  ruleRequest
	}{
		{
			name: "missing value",
			req:  ruleRequest{Field: "category", Operator: "EQUALS"},
		},
		{
			name: "unknown field",
			req:  ruleRequest{Field: "name", Operator: "EQUALS", Value: "x"},
		},
		{
			name: "unknown operator",
			req:  ruleRequest{Field: "color", Operator: "MATCHES", Value: "x"},
		},
		{
			name: "lowercase operator rejected",
			req:  ruleRequest{Field: "color", Operator: "equals", Value: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
		})
	}
}

func TestValidator_GarmentStatus(t *testing.T) {
	v := validation.New()

	type statusRequest struct {
		Status string `json:"status" validate:"required,garmentstatus"`
	}

	assert.NoError(t, v.Validate(statusRequest{Status: "NEEDS_WASHING"}))
	assert.Error(t, v.Validate(statusRequest{Status: "SOAKING"}))
}
