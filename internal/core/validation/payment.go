package validation

import (
	"strings"
)

// PaymentInput holds the raw payment fields as they arrive from a caller.
type PaymentInput struct {
	Amount           string `validate:"required,amount" label:"amount"`
	Currency         string `validate:"required,oneof=USD EUR GBP ZAR" label:"currency"`
	Provider         string `validate:"required,oneof=SWIFT TransferWise WesternUnion" label:"provider"`
	RecipientAccount string `validate:"required,recipient_account" label:"recipient account"`
	SwiftCode        string `validate:"required,swift_code" label:"SWIFT code"`
	Reference        string
}

// NormalizePayment trims and case-folds the payment fields.
// The recipient account loses all whitespace and the reference is cut to
// MaxReferenceLength characters, falling back to DefaultReference when empty.
func NormalizePayment(in PaymentInput) PaymentInput {
	out := PaymentInput{
		Amount:           strings.TrimSpace(in.Amount),
		Currency:         strings.ToUpper(strings.TrimSpace(in.Currency)),
		Provider:         strings.TrimSpace(in.Provider),
		RecipientAccount: StripWhitespace(in.RecipientAccount),
		SwiftCode:        strings.ToUpper(strings.TrimSpace(in.SwiftCode)),
		Reference:        Truncate(strings.TrimSpace(in.Reference), MaxReferenceLength),
	}
	if out.Reference == "" {
		out.Reference = DefaultReference
	}
	return out
}

// ProviderOrDefault returns DefaultProvider when the caller left the provider out.
func ProviderOrDefault(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return DefaultProvider
	}
	return raw
}

// Payment normalizes in and validates the result, returning every failing field at once.
func (v *Validator) Payment(in PaymentInput) (PaymentInput, error) {
	out := NormalizePayment(in)
	if err := v.check(out); err != nil {
		return PaymentInput{}, err
	}
	return out, nil
}

// StatusTarget trims raw and reports whether it names a status that may be set by hand.
// Pending is never a manual target.
func StatusTarget(raw string) (string, bool) {
	status := strings.TrimSpace(raw)
	switch status {
	case "verified", "submitted", "rejected":
		return status, true
	}
	return status, false
}
