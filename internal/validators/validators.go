package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// MaxAmount is the largest amount accepted for conversion.
const MaxAmount = 1_000_000_000

var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return IsValidCurrencyCode(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsValidCurrencyCode reports whether code is exactly three latin letters, in any case.
func IsValidCurrencyCode(code string) bool {
	return currencyCodeRe.MatchString(code)
}

// IsValidAmount reports whether amount is finite, positive and at most MaxAmount.
func IsValidAmount(amount float64) bool {
	return !math.IsNaN(amount) &&
		!math.IsInf(amount, 0) &&
		amount > 0 &&
		amount <= MaxAmount
}

// ValidateConversionRequest returns one message per broken rule, or nil.
func ValidateConversionRequest(req models.ConversionRequest) []string {
	var details []string
	for _, fe := range fieldErrors(req) {
		details = append(details, fieldMessage(fe.Field(), fe.Tag()))
	}
	return details
}

// DecodeConversionRequest reads a conversion body and validates it.
// Fields of the wrong JSON type are reported the same way as malformed ones.
func DecodeConversionRequest(r io.Reader) (models.ConversionRequest, []string) {
	var body struct {
		From   any `json:"from"`
		To     any `json:"to"`
		Amount any `json:"amount"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return models.ConversionRequest{}, []string{"request body must be a JSON object"}
	}

	var req models.ConversionRequest
	mistyped := make(map[string]string)

	if v, ok := body.From.(string); ok {
		req.From = v
	} else if body.From != nil {
		mistyped["from"] = "currency"
	}
	if v, ok := body.To.(string); ok {
		req.To = v
	} else if body.To != nil {
		mistyped["to"] = "currency"
	}
	if v, ok := body.Amount.(float64); ok {
		req.Amount = &v
	} else if body.Amount != nil {
		mistyped["amount"] = "gt"
	}

	reported := make(map[string]bool)
	var details []string
	for _, field := range []string{"from", "to", "amount"} {
		if tag, ok := mistyped[field]; ok {
			details = append(details, fieldMessage(field, tag))
			reported[field] = true
		}
	}
	for _, fe := range fieldErrors(req) {
		if !reported[fe.Field()] {
			details = append(details, fieldMessage(fe.Field(), fe.Tag()))
			reported[fe.Field()] = true
		}
	}
	if len(details) > 0 {
		return req, details
	}

	req.From = strings.ToUpper(req.From)
	req.To = strings.ToUpper(req.To)
	return req, nil
}

func fieldErrors(req models.ConversionRequest) validator.ValidationErrors {
	var verrs validator.ValidationErrors
	if err := validate.Struct(req); err != nil {
		errors.As(err, &verrs)
	}
	return verrs
}

func fieldMessage(field, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("field %q is required", field)
	case "currency":
		return fmt.Sprintf("field %q must be a 3-letter currency code", field)
	case "gt", "lte":
		return fmt.Sprintf("field %q must be a positive number not greater than %d", field, MaxAmount)
	default:
		return fmt.Sprintf("field %q is invalid", field)
	}
}
