package usps

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the client ID or client secret
	// has not been stored. Surfaced to the operator; never retried.
	ErrMissingCredentials = errors.New("no client ID/secret found; set credentials first")

	// ErrTokenResponseMalformed is returned when the token endpoint responds
	// with a body that is not valid JSON.
	ErrTokenResponseMalformed = errors.New("token endpoint returned invalid JSON")
)

// TokenRequestError is returned when the token endpoint responds with a
// non-2xx status. The previously stored token, if any, remains untouched.
type TokenRequestError struct {
	Status int
	Body   string
}

func (e *TokenRequestError) Error() string {
	return fmt.Sprintf("token request failed: HTTP %d: %s", e.Status, e.Body)
}

// TokenFieldError is returned when the token endpoint responds with parseable
// JSON that carries no access_token field.
type TokenFieldError struct {
	Body string
}

func (e *TokenFieldError) Error() string {
	return fmt.Sprintf("no access_token in response: %s", e.Body)
}
