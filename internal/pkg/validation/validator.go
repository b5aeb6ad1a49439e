package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gym-membership-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Check runs struct tag rules on v and returns every failed rule.
func Check(v interface{}) []apperror.Violation {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperror.Violation{{Field: "", Message: err.Error()}}
	}

	violations := make([]apperror.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperror.Violation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return violations
}

// Struct is Check folded into a single validation error, or nil.
func Struct(v interface{}) error {
	if violations := Check(v); len(violations) > 0 {
		return apperror.Validation(violations...)
	}
	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	// "eq=|email" style rules report the last alternative
	tag := fe.Tag()
	if i := strings.LastIndex(tag, "|"); i >= 0 {
		tag = tag[i+1:]
	}
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
