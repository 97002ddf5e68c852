package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

func NewValidator() usecasecontract.IValidator {
	return &AppValidator{validate: validator.New()}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	if err := av.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email address", entity.ErrValidation)
	}
	return nil
}

// ValidatePasswordStrength checks if the password meets the strength requirements.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters long", entity.ErrValidation)
	case !containsUppercase(password):
		return fmt.Errorf("%w: password must contain at least one uppercase letter", entity.ErrValidation)
	case !containsLowercase(password):
		return fmt.Errorf("%w: password must contain at least one lowercase letter", entity.ErrValidation)
	case !containsNumber(password):
		return fmt.Errorf("%w: password must contain at least one number", entity.ErrValidation)
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("containsuppercase", containsUppercaseFL)
		_ = v.RegisterValidation("containslowercase", containsLowercaseFL)
		_ = v.RegisterValidation("containsdigit", containsNumberFL)
		_ = v.RegisterValidation("messagetype", messageTypeFL)
		_ = v.RegisterValidation("reaction", reactionFL)
		_ = v.RegisterValidation("adstatus", adStatusFL)
	}
}

func containsUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func containsLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func containsNumber(s string) bool {
	return strings.IndexFunc(s, unicode.IsNumber) >= 0
}

func containsUppercaseFL(fl validator.FieldLevel) bool {
	return containsUppercase(fl.Field().String())
}

func containsLowercaseFL(fl validator.FieldLevel) bool {
	return containsLowercase(fl.Field().String())
}

func containsNumberFL(fl validator.FieldLevel) bool {
	return containsNumber(fl.Field().String())
}

func messageTypeFL(fl validator.FieldLevel) bool {
	_, ok := entity.ParseMessageType(fl.Field().String())
	return ok
}

func reactionFL(fl validator.FieldLevel) bool {
	_, ok := entity.ParseReactionType(fl.Field().String())
	return ok
}

func adStatusFL(fl validator.FieldLevel) bool {
	_, ok := entity.ParseAdStatus(fl.Field().String())
	return ok
}
