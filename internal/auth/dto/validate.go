package dto

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// bcrypt refuses inputs longer than 72 bytes; max counts runes.
		_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			return err == nil && len(fl.Field().String()) <= limit
		})
	})
	return validate
}

// Validate checks v against its validate tags and returns a validation error
// with one message per offending JSON field.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperrors.Validation("invalid input", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "maxbytes":
		return "Ensure this field has no more than " + fe.Param() + " bytes."
	default:
		return "Invalid value."
	}
}
