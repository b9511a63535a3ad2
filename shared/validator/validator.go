package validator

import (
	"carrental/shared/failure"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const centPlaces = 2

var validate *val.Validate

// registerAmountValidation accepts text that parses as a strictly positive
// decimal with at most two decimal places, so the stored cent value is never 0.
func registerAmountValidation(field val.FieldLevel) bool {
	text, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return false
	}

	return amount.IsPositive() && amount.Equal(amount.Round(centPlaces))
}

func decimalValue(field reflect.Value) any {
	if amount, ok := field.Interface().(decimal.Decimal); ok {
		value, _ := amount.Float64()

		return value
	}

	return nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	if err := validate.RegisterValidation("amount", registerAmountValidation); err != nil {
		panic(err)
	}

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.Validation(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.Validation(msg) //nolint:wrapcheck
	}

	return nil
}
