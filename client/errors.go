package client

import "fmt"

// NetworkError means no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response from the archive service.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("archive returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("archive returned status %d", e.Status)
}

// ValidationError is a client-side rejection; no request was issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError means a password-gated operation was refused by the service.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
