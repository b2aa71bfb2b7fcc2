package validation

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/money"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	// decimal fields are validated through their float value
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("non_negative_amount", validateNonNegativeAmount)
	_ = v.RegisterValidation("max_amount", validateMaxAmount)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("category_name", validateCategoryName)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns the raw validator errors
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Var validates a single value against tag
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// FormatErrors turns validator errors into one readable message per field
func FormatErrors(err error) map[string]string {
	out := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if err != nil {
			out["_"] = err.Error()
		}
		return out
	}

	for _, fe := range validationErrors {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "money_amount":
		return "must be a positive amount with at most 2 decimal places"
	case "positive_amount":
		return "must be greater than zero"
	case "non_negative_amount":
		return "cannot be negative"
	case "max_amount":
		return "must be at most " + money.Format(money.MaxAmount)
	case "transaction_type":
		return "must be income or expense"
	case "category_name":
		return "must be a non-empty name of at most 100 characters"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// validateMoneyAmount validates that an amount is positive and has at most 2 decimal places
func validateMoneyAmount(fl validator.FieldLevel) bool {
	var amount decimal.Decimal
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		amount = decimal.NewFromFloat(fl.Field().Float())
	case reflect.String:
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		amount = d
	default:
		return false
	}

	if !amount.IsPositive() {
		return false
	}
	return amount.Equal(money.Normalize(amount))
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}

// validateNonNegativeAmount validates that an amount is zero or greater
func validateNonNegativeAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() >= 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() >= 0
	default:
		return false
	}
}

// validateMaxAmount validates that an amount fits the store's DECIMAL(15,2)
// columns once rounded
func validateMaxAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return money.InRange(decimal.NewFromInt(fl.Field().Int()))
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		return money.InRange(decimal.NewFromFloat(f))
	case reflect.String:
		d, err := decimal.NewFromString(strings.ReplaceAll(fl.Field().String(), ",", "."))
		if err != nil {
			return false
		}
		return money.InRange(d)
	case reflect.Struct:
		if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
			return money.InRange(d)
		}
		return false
	default:
		return false
	}
}

// validateTransactionType validates that transaction type is one of the allowed types
func validateTransactionType(fl validator.FieldLevel) bool {
	txType := strings.ToLower(fl.Field().String())
	validTypes := map[string]bool{
		"income":  true,
		"expense": true,
	}
	return validTypes[txType]
}

func validateCategoryName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	return name != "" && utf8.RuneCountInString(name) <= 100
}
