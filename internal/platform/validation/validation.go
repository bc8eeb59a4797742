package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finbase/sepa_payments_app/internal/sepa"
)

// RegisterCustomValidators hooks the domain-specific binding tags into gin's
// validator engine. Must run once at startup, before any request binding.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("sepaflavor", validSEPAFlavor)
}

// validSEPAFlavor accepts the flavor names a builder is registered for.
func validSEPAFlavor(fl validator.FieldLevel) bool {
	flavor := fl.Field().String()
	for _, known := range sepa.Flavors() {
		if flavor == known {
			return true
		}
	}
	return false
}
