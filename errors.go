package auth

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
)

// Validation failures, worded exactly as clients expect them.
var (
	ErrMissingFields = errors.New("Please enter all the required fields.", errors.CategoryValidation).
				WithCode(errors.CodeBadRequest).
				WithTextCode("MISSING_FIELDS")

	ErrUsernameTooLong = errors.New("Username can only be less than 25 characters.", errors.CategoryValidation).
				WithCode(errors.CodeBadRequest).
				WithTextCode("USERNAME_TOO_LONG")

	ErrInvalidEmail = errors.New("Please enter a valid email address.", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithTextCode("INVALID_EMAIL")

	ErrPasswordTooShort = errors.New("Password must be at least 6 characters long.", errors.CategoryValidation).
				WithCode(errors.CodeBadRequest).
				WithTextCode("PASSWORD_TOO_SHORT")
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("Invalid email or password.", errors.CategoryAuth).
	WithCode(errors.CodeBadRequest).
	WithTextCode("INVALID_CREDENTIALS")

// ErrAuthorizationRequired covers every rejection of the authorization gate:
// missing, malformed or expired tokens, and subjects that no longer exist.
// The reason is never distinguished to the caller.
var ErrAuthorizationRequired = errors.New("Authorization required.", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("UNAUTHORIZED")

// ErrServerError is the only message unexpected failures surface to clients;
// the underlying detail is logged server-side.
var ErrServerError = errors.New("An error occurred.", errors.CategoryInternal).
	WithCode(errors.CodeInternal).
	WithTextCode("INTERNAL_ERROR")

// ErrTokenExpired is the token service's expiry failure
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers every structural or cryptographic token defect
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrNoEmptyString is the error for blank hashing input
var ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryValidation).
	WithTextCode("EMPTY_STRING")

// ErrMismatchedHashAndPassword is returned when a password does not match its hash
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrUnableToParseBody is returned when a request body cannot be decoded
var ErrUnableToParseBody = errors.New("Unable to parse request body.", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode("UNPARSABLE_BODY")

// NewEmailAlreadyExistsError includes the offending email in the message,
// matching the registration endpoint's contract.
func NewEmailAlreadyExistsError(email string) *errors.Error {
	return errors.New(
		fmt.Sprintf("A user with that email [%s] already exists. Please try another one.", email),
		errors.CategoryConflict,
	).
		WithCode(errors.CodeBadRequest).
		WithTextCode("EMAIL_ALREADY_EXISTS")
}

// IsEmailAlreadyExistsError will check for duplicate email failures
func IsEmailAlreadyExistsError(err error) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == "EMAIL_ALREADY_EXISTS"
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
