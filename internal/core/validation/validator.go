package validation

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// MaxReferenceLength is the longest reference kept on a payment, in characters.
	MaxReferenceLength = 80
	// DefaultReference is stored when a payment is created without a reference.
	DefaultReference = "N/A"
	// DefaultProvider is applied at the request boundary when no provider is given.
	DefaultProvider = "SWIFT"

	passwordSymbols = "@$!%*#?&"

	// float64 tops out just below 1.8e308, a 309 digit integer part
	maxAmountDigits = 309
	// anything under 0.001 rounds to zero cents
	minAmountMagnitude = -2
)

var (
	nameRegex      = regexp.MustCompile(`^[A-Za-z\s'-]{3,60}$`)
	idNumberRegex  = regexp.MustCompile(`^\d{13}$`)
	accountRegex   = regexp.MustCompile(`^\d{8,12}$`)
	recipientRegex = regexp.MustCompile(`^\d{8,20}$`)
	swiftRegex     = regexp.MustCompile(`^[A-Z0-9]{8}(?:[A-Z0-9]{3})?$`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// ValidationError carries every field failure of a single request.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, ", ")
}

// Validator checks and normalizes raw request fields.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the portal's field rules registered as tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their human label rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	mustRegister(v, "full_name", matches(nameRegex))
	mustRegister(v, "id_number", matches(idNumberRegex))
	mustRegister(v, "account_number", matches(accountRegex))
	mustRegister(v, "recipient_account", matches(recipientRegex))
	mustRegister(v, "swift_code", matches(swiftRegex))
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		_, ok := ParseAmount(fl.Field().String())
		return ok
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// check runs the struct rules and folds every failure into one ValidationError.
func (v *Validator) check(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			reasons = append(reasons, fe.Field()+" is required")
			continue
		}
		reasons = append(reasons, "Invalid "+fe.Field())
	}
	return &ValidationError{Reasons: reasons}
}

// ParseAmount accepts any finite numeric literal greater than zero.
// The magnitude is bounded from the digit count and exponent before any
// arithmetic, so literals like 1e2000000000 are refused without being expanded.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	if !amount.IsPositive() {
		return decimal.Zero, false
	}

	magnitude := int64(amount.NumDigits()) + int64(amount.Exponent())
	if magnitude > maxAmountDigits || magnitude < minAmountMagnitude {
		return decimal.Zero, false
	}
	if magnitude == maxAmountDigits && math.IsInf(amount.InexactFloat64(), 0) {
		return decimal.Zero, false
	}
	return amount, true
}

// StrongPassword reports whether pw is 8-32 characters drawn from letters, digits and
// the allowed symbols, with at least one of each class.
func StrongPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 32 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// StripWhitespace removes every whitespace run from s.
func StripWhitespace(s string) string {
	return whitespace.ReplaceAllString(s, "")
}
