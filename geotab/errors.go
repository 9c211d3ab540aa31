package geotab

import (
	"strings"
)

// CredentialsErrorPrefix is the fixed prefix the API uses on authentication
// fault messages. Faults are classified by comparing the first reported
// message against it.
const CredentialsErrorPrefix = "Incorrect MyGeotab login credentials"

// APIError is a fault reported by the API that is not an authentication
// failure. Name carries the server-side exception name when provided.
type APIError struct {
	Name    string
	Message string
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return e.Name + ": " + e.Message
	}

	return e.Message
}

// CredentialsError is an authentication fault reported by the API,
// signaling that the supplied credentials were rejected.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	return e.Message
}

// ClassifyFault maps a server-reported fault to the matching error kind:
// a *CredentialsError when the message starts with CredentialsErrorPrefix,
// a *APIError for anything else.
func ClassifyFault(name string, message string) error {
	if strings.HasPrefix(message, CredentialsErrorPrefix) {
		return &CredentialsError{Message: message}
	}

	return &APIError{Name: name, Message: message}
}
