package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	. "coutupro/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// amount tags (gt, gte) compare against the decimal's value
		validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	})
	return validate
}

func decimalValue(field reflect.Value) any {
	amount, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	value, _ := amount.Float64()
	return value
}

// ValidateStruct checks validate tags and wraps failures in ErrValidation
// so callers can match them with errors.Is.
func ValidateStruct(value any) error {
	err := validatorInstance().Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldError.Field(), fieldError.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
}

// Invalid builds a validation error for checks tags cannot express.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
