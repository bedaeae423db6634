package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// vehicleTypes is the closed set accepted by the vehicle_type binding tag.
var vehicleTypes = map[string]bool{
	"standard":   true,
	"wheelchair": true,
	"stretcher":  true,
}

// RegisterGinValidators registers custom binding tags on gin's validator
// engine. Call once at startup.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	return v.RegisterValidation("vehicle_type", func(fl validator.FieldLevel) bool {
		return vehicleTypes[fl.Field().String()]
	})
}

// Message translates a binding error into user-friendly text. Non-validator
// errors (malformed JSON and the like) fall back to their own message.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs).Error()
	}
	return err.Error()
}
