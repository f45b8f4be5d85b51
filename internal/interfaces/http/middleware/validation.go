package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs custom binding validations on gin's
// validator engine. Call once at startup before serving requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("decimal", validDecimal)
}

// validDecimal accepts strings that parse as a decimal number. Empty
// strings pass so the rule composes with omitempty.
func validDecimal(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
