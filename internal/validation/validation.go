// Package validation defines the invoice input schema and coerces raw form
// input into typed invoice fields.
package validation

import (
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
	ierr "github.com/set-night/invoicedash/internal/errors"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// FieldErrors maps a form field name to its human-readable error messages.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Err converts the field errors into an error marked as a validation failure,
// carrying the messages as reportable details. It returns nil when empty.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	details := make(map[string]any, len(fe))
	for field, msgs := range fe {
		details[field] = msgs
	}
	return ierr.WithError(domain.ErrInvalidInvoiceInput).
		WithHint("Invoice input failed validation").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}

// Result is the outcome of safe validation. Exactly one of Data or Errors is meaningful.
type Result struct {
	Success bool
	Data    domain.InvoiceFields
	Errors  FieldErrors
}

// invoiceSchema holds coerced input. Amount is in minor currency units and
// bounded by the invoices.amount INT column.
type invoiceSchema struct {
	CustomerID string `json:"customerId" validate:"required"`
	Amount     int64  `json:"amount" validate:"gt=0,lte=2147483647"`
	Status     string `json:"status" validate:"required,oneof=pending paid"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate runs safe validation: it never fails, and reports per-field
// messages when the input does not satisfy the schema.
func Validate(form domain.InvoiceForm) Result {
	errs := make(FieldErrors)

	amount, ok := coerceAmount(form.Amount)
	if !ok {
		errs.add(FieldAmount, config.MsgAmountInvalid)
	}

	schema := invoiceSchema{
		CustomerID: deref(form.CustomerID),
		Amount:     toMinorUnits(amount),
		Status:     deref(form.Status),
	}

	if err := getValidator().Struct(schema); err != nil {
		var verrs validator.ValidationErrors
		if !ierr.As(err, &verrs) {
			// schema is always a struct
			panic(err)
		}
		for _, fe := range verrs {
			field := fe.Field()
			if _, seen := errs[field]; seen {
				continue
			}
			errs.add(field, messageFor(field, fe.Tag()))
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	return Result{
		Success: true,
		Data: domain.InvoiceFields{
			CustomerID:  schema.CustomerID,
			Amount:      amount,
			AmountMinor: schema.Amount,
			Status:      domain.InvoiceStatus(schema.Status),
		},
	}
}

// Parse runs strict validation: any violation is returned as an error marked
// as a validation failure, with the field messages attached as details.
func Parse(form domain.InvoiceForm) (domain.InvoiceFields, error) {
	res := Validate(form)
	if !res.Success {
		return domain.InvoiceFields{}, res.Errors.Err()
	}
	return res.Data, nil
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// maxMajorDigits is the widest integer part that can still fit in int64 minor units.
const maxMajorDigits = 18

// toMinorUnits converts a major-unit amount into an integer count of minor
// units, rounding half away from zero. Out-of-range values saturate.
func toMinorUnits(amount decimal.Decimal) int64 {
	if amount.IsZero() {
		return 0
	}
	// |amount| < 10^mag; settle extreme exponents before any scaling
	mag := amount.NumDigits() + int(amount.Exponent())
	switch {
	case mag > maxMajorDigits:
		if amount.Sign() > 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	case mag < -config.MinorUnitsExponent:
		return 0
	}

	m := amount.Shift(config.MinorUnitsExponent).Round(0)
	switch {
	case m.GreaterThan(maxMinor):
		return math.MaxInt64
	case m.LessThan(minMinor):
		return math.MinInt64
	}
	return m.IntPart()
}

// coerceAmount mirrors numeric form coercion: a missing or blank value is zero,
// anything else must parse as a decimal number.
func coerceAmount(raw *string) (decimal.Decimal, bool) {
	if raw == nil {
		return decimal.Zero, true
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return decimal.Zero, true
	}
	if len(s) > config.MaxAmountInputLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func messageFor(field, tag string) string {
	switch field {
	case FieldCustomerID:
		return config.MsgSelectCustomer
	case FieldAmount:
		if tag == "lte" {
			return config.MsgAmountTooLarge
		}
		return config.MsgAmountPositive
	case FieldStatus:
		return config.MsgSelectStatus
	default:
		return "Invalid value"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
