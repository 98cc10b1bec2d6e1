package auth

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MaxUsernameLength is the longest accepted username
const MaxUsernameLength = 25

// MinPasswordLength is the shortest accepted password at registration. Login
// never re-checks length so previously registered passwords keep working if
// the minimum is ever raised.
const MinPasswordLength = 6

// emailPattern is deliberately permissive rather than RFC-pure: quoted local
// parts and bracketed IPv4 domains are accepted, dotted domains need a TLD of
// at least two letters. Behavior compatibility with existing accounts wins
// over strictness here.
var emailPattern = regexp.MustCompile(`^(([^<>()[\]\\.,;:\s@"]+(\.[^<>()[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate runs the registration rules. Checks are ordered so the first
// failure decides the error: presence, then username length, then email
// shape, then password length.
func (r RegisterRequest) Validate() error {
	for _, field := range []string{r.Username, r.Name, r.Email, r.Password} {
		if err := validation.Validate(field, validation.Required); err != nil {
			return ErrMissingFields
		}
	}

	if err := validation.Validate(r.Username, validation.Length(0, MaxUsernameLength)); err != nil {
		return ErrUsernameTooLong
	}

	if err := validation.Validate(r.Email, validation.Match(emailPattern)); err != nil {
		return ErrInvalidEmail
	}

	if err := validation.Validate(r.Password, validation.Length(MinPasswordLength, 0)); err != nil {
		return ErrPasswordTooShort
	}

	return nil
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	for _, field := range []string{r.Email, r.Password} {
		if err := validation.Validate(field, validation.Required); err != nil {
			return ErrMissingFields
		}
	}

	if err := validation.Validate(r.Email, validation.Match(emailPattern)); err != nil {
		return ErrInvalidEmail
	}

	return nil
}
