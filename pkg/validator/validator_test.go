package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	PIN        string `json:"pin" validate:"required,pin"`
	PINConfirm string `json:"pin_confirm" validate:"required,eqfield=PIN"`
}

type childRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"required,isodate"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	BornFrom    string `json:"born_from" validate:"omitempty,isodate"`
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&registerRequest{Email: "nurse@example.org", PIN: "123456", PINConfirm: "123456"}))
	assert.NoError(t, v.Validate(&childRequest{Name: "Amani", DateOfBirth: "2024-02-29", Gender: "Female"}))
}

func TestValidate_PIN(t *testing.T) {
	v := NewValidator()

	for _, pin := range []string{"12345", "1234567", "12345a", "١٢٣٤٥٦", "12 456"} {
		err := v.Validate(&registerRequest{Email: "a@b.co", PIN: pin, PINConfirm: pin})
		require.Error(t, err, pin)
		assert.Equal(t, "pin must be exactly 6 digits", v.FormatValidationErrors(err)["pin"], pin)
	}
}

func TestValidate_PINConfirmMismatch(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Email: "a@b.co", PIN: "123456", PINConfirm: "654321"})
	require.Error(t, err)
	assert.Equal(t, "pin_confirm must match PIN", v.FormatValidationErrors(err)["pin_confirm"])
}

func TestValidate_ISODate(t *testing.T) {
	v := NewValidator()

	for _, dob := range []string{"2024-02-30", "01/01/2024", "2024-1-1", "yesterday"} {
		err := v.Validate(&childRequest{Name: "Amani", DateOfBirth: dob, Gender: "Male"})
		require.Error(t, err, dob)
		assert.Equal(t, "date_of_birth must be a date in YYYY-MM-DD format", v.FormatValidationErrors(err)["date_of_birth"], dob)
	}

	err := v.Validate(&childRequest{Name: "Amani", DateOfBirth: "2024-01-01", Gender: "Male", BornFrom: "last year"})
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err), "born_from")
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&childRequest{Gender: "Unknown", DateOfBirth: "2024-01-01"})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "name is required", msgs["name"])
	assert.Equal(t, "gender must be one of: Male, Female, Other", msgs["gender"])
}
