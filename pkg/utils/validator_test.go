package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email"`
	Rating   *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func intPtr(v int) *int { return &v }

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sampleForm{
		Username: "alice.b+1",
		Email:    "alice@example.com",
		Rating:   intPtr(5),
		Password: "x",
		Confirm:  "x",
	})
	assert.Empty(t, errs)
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	errs := ValidateStruct(sampleForm{
		Username: "bad name!",
		Email:    "not-an-email",
		Rating:   intPtr(6),
		Password: "x",
		Confirm:  "y",
	})

	assert.Contains(t, errs["username"], "valid username")
	assert.Equal(t, "Enter a valid email address", errs["email"])
	assert.Equal(t, "Ensure this value is less than or equal to 5", errs["rating"])
	assert.Equal(t, "The two password fields didn't match", errs["password_confirm"])
}

func TestValidateStruct_RatingZeroRejected(t *testing.T) {
	errs := ValidateStruct(sampleForm{
		Username: "alice", Email: "a@b.co", Rating: intPtr(0), Password: "x", Confirm: "x",
	})
	assert.Equal(t, "Ensure this value is greater than or equal to 1", errs["rating"])
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	out := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "a: one; b: two", out)
}
