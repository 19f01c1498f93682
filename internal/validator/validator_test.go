package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		FullName:    "Ana",
		Email:       "a@x.com",
		PhoneNumber: "1234567890",
		Password:    "secret1",
		Role:        "seeker",
	}
}

func TestRegisterRequestValid(t *testing.T) {
	v := New()
	assert.Empty(t, v.Validate(validRegister()))
}

func TestRegisterRequestRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantTag string
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "required"},
		{"malformed email", func(r *RegisterRequest) { r.Email = "nope" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "12345" }, "min"},
		{"phone with dashes", func(r *RegisterRequest) { r.PhoneNumber = "123-456-789" }, "phone_number"},
		{"phone too short", func(r *RegisterRequest) { r.PhoneNumber = "123456789" }, "phone_number"},
		{"phone too long", func(r *RegisterRequest) { r.PhoneNumber = "12345678901" }, "phone_number"},
		{"unknown role", func(r *RegisterRequest) { r.Role = "admin" }, "oneof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			req := validRegister()
			tt.mutate(&req)

			errs := v.Validate(req)
			assert.NotEmpty(t, errs)
			assert.Equal(t, tt.wantTag, errs[0].Tag)
		})
	}
}

func TestUpdateProfileRequestNilFieldsSkipValidation(t *testing.T) {
	v := New()
	assert.Empty(t, v.Validate(UpdateProfileRequest{}))
}

func TestUpdateProfileRequestValidatesSuppliedFields(t *testing.T) {
	v := New()
	bad := "not-an-email"
	errs := v.Validate(UpdateProfileRequest{Email: &bad})
	assert.NotEmpty(t, errs)
	assert.Equal(t, "email", errs[0].Tag)
}

func TestValidationErrorsMessage(t *testing.T) {
	v := New()
	errs := v.Validate(LoginRequest{})
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "required")
}
