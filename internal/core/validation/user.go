package validation

import "strings"

// SignupInput is a customer registration request.
type SignupInput struct {
	FullName      string `validate:"required,full_name" label:"full name"`
	IDNumber      string `validate:"required,id_number" label:"ID number"`
	AccountNumber string `validate:"required,account_number" label:"account number"`
	Password      string `validate:"required,password" label:"password"`
}

// LoginInput is a credential check request.
type LoginInput struct {
	AccountNumber string `validate:"required,account_number" label:"account number"`
	Password      string `validate:"required,min=8" label:"password"`
}

// Signup trims the identity fields and validates the registration.
// The password rule is applied to the trimmed password, but the password
// is returned exactly as given since that is what gets hashed.
func (v *Validator) Signup(in SignupInput) (SignupInput, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)

	checked := in
	checked.Password = strings.TrimSpace(in.Password)
	if err := v.check(checked); err != nil {
		return SignupInput{}, err
	}
	return in, nil
}

// Login trims the account number and validates the credentials shape.
// As with Signup, the raw password is returned for comparison.
func (v *Validator) Login(in LoginInput) (LoginInput, error) {
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)

	checked := in
	checked.Password = strings.TrimSpace(in.Password)
	if err := v.check(checked); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}
