package models

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	for tag, fn := range map[string]validator.Func{
		"decimal":            isDecimal,
		"nonnegative":        isNonNegative,
		"max_digits":         hasMaxDigits,
		"max_decimal_places": hasMaxDecimalPlaces,
		"max_whole_digits":   hasMaxWholeDigits,
		"maxbytes":           hasMaxBytes,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// Validate checks s against its validate tags. Field failures come back as a
// *ValidationError keyed by JSON field name.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("Ensure this field has no more than %s bytes.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "decimal":
		return "A valid number is required."
	case "nonnegative":
		return "Ensure this value is greater than or equal to 0."
	case "max_digits":
		return fmt.Sprintf("Ensure that there are no more than %s digits in total.", fe.Param())
	case "max_decimal_places":
		return fmt.Sprintf("Ensure that there are no more than %s decimal places.", fe.Param())
	case "max_whole_digits":
		return fmt.Sprintf("Ensure that there are no more than %s digits before the decimal point.", fe.Param())
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func paramInt(fl validator.FieldLevel) int {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("validator %s: bad param %q", fl.GetTag(), fl.Param()))
	}
	return n
}

func isDecimal(fl validator.FieldLevel) bool {
	_, ok := fieldDecimal(fl)
	return ok
}

func isNonNegative(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !d.IsNegative()
}

func hasMaxDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	digits, _ := digitCounts(d)
	return digits <= paramInt(fl)
}

func hasMaxDecimalPlaces(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	_, decimals := digitCounts(d)
	return decimals <= paramInt(fl)
}

func hasMaxWholeDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	digits, decimals := digitCounts(d)
	return digits-decimals <= paramInt(fl)
}

func hasMaxBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= paramInt(fl)
}

// digitCounts reports total significant digits and decimal places of d the
// way a NUMERIC(p,s) column sees them.
func digitCounts(d decimal.Decimal) (digits, decimals int) {
	coef := d.Coefficient()
	n := len(coef.Abs(coef).String())
	exp := int(d.Exponent())
	if exp >= 0 {
		return n + exp, 0
	}
	decimals = -exp
	if decimals > n {
		return decimals, decimals
	}
	return n, decimals
}
