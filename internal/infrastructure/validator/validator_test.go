package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

func TestValidatePasswordStrength(t *testing.T) {
	v := NewValidator()

	cases := map[string]bool{
		"Passw0rd":     true,
		"short1A":      false,
		"alllower1":    false,
		"ALLUPPER1":    false,
		"NoDigitsHere": false,
	}
	for pw, ok := range cases {
		err := v.ValidatePasswordStrength(pw)
		if ok {
			assert.NoError(t, err, pw)
		} else {
			assert.ErrorIs(t, err, entity.ErrValidation, pw)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateEmail("a@b.com"))
	assert.ErrorIs(t, v.ValidateEmail("not-an-email"), entity.ErrValidation)
}
