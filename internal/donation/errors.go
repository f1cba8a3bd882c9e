package donation

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is a non-success response from the backend. Message carries
// the backend's own error text when one was sent.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// TransportError means no response reached the client at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// IsServerError reports whether err is a backend 5xx.
func IsServerError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode >= 500
}

// IsTransport reports whether err is a transport failure (no response).
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// RemoteMessage returns the backend's error text for a RemoteError, or ""
// when err is not remote or carried no message.
func RemoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
