package providers

import (
	"errors"
	"fmt"
)

type rateLimitError struct {
	body string
}

func (e *rateLimitError) Error() string {
	if e.body == "" {
		return "rate limited"
	}
	return "rate limited: " + e.body
}

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.statusCode, e.body)
}

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError reports whether err, or anything it wraps, is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsRateLimitError reports whether the endpoint rejected the call for quota reasons.
func IsRateLimitError(err error) bool {
	var rl *rateLimitError
	return errors.As(err, &rl)
}
