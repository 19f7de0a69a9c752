package handlers

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/numerology"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator. It is
// safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("birthdate", validateBirthDate)
		}
	})
}

func validateBirthDate(fl validator.FieldLevel) bool {
	_, err := numerology.ParseBirthDate(fl.Field().String())
	return err == nil
}

// failedTag returns the first failing validation tag for field, if any.
func failedTag(err error, field string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	for _, fe := range verrs {
		if fe.Field() == field {
			return fe.Tag()
		}
	}
	return ""
}
