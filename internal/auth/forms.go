package auth

import (
	"unicode"

	"github.com/curiousguyinhis30s/themepark-website/internal/validate"
)

const MinPasswordLength = 8

// Registration is the sign-up form.
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateLogin checks the sign-in form fields.
func ValidateLogin(email, password string) validate.FieldErrors {
	fe := validate.FieldErrors{}
	checkEmail(fe, email)
	checkPassword(fe, password)
	return fe
}

// ValidateRegistration checks the sign-up form. A password that lacks
// an uppercase letter, a lowercase letter or a digit reports that instead
// of the length message.
func ValidateRegistration(r Registration) validate.FieldErrors {
	fe := validate.FieldErrors{}
	checkEmail(fe, r.Email)
	checkPassword(fe, r.Password)

	if r.Name == "" {
		fe.Add("name", "Name is required")
	}
	if r.Password != r.ConfirmPassword {
		fe.Add("confirmPassword", "Passwords do not match")
	}
	if r.Password != "" && !mixedPassword(r.Password) {
		fe.Set("password", "Password must include uppercase, lowercase, and number")
	}
	return fe
}

func checkEmail(fe validate.FieldErrors, email string) {
	switch {
	case email == "":
		fe.Add("email", "Email is required")
	case !validate.Email(email):
		fe.Add("email", "Invalid email format")
	}
}

func checkPassword(fe validate.FieldErrors, password string) {
	switch {
	case password == "":
		fe.Add("password", "Password is required")
	case len(password) < MinPasswordLength:
		fe.Add("password", "Password must be at least 8 characters")
	}
}

func mixedPassword(p string) bool {
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
