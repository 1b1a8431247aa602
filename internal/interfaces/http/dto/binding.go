package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/storekit/backend/internal/domain/trade"
)

// RegisterValidations installs custom binding validations on gin's
// validator engine. Must run once before the first request is bound.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("docnumber", validDocumentNumber)
}

// validDocumentNumber accepts well-formed document numbers (PREFIX-YYMMDDSSSS)
func validDocumentNumber(fl validator.FieldLevel) bool {
	_, _, _, err := trade.ParseDocumentNumber(fl.Field().String())
	return err == nil
}
