package geotab

import (
	"strings"
)

// Credentials is the credentials object sent verbatim in every request
// envelope. Either SessionID or Password identifies the session; empty
// fields are omitted from the serialized form.
type Credentials struct {
	Database  string `json:"database,omitempty"`
	UserName  string `json:"userName,omitempty"`
	Password  string `json:"password,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Connection supplies the server to talk to and the credentials to send.
// It is a passive value; acquiring credentials is the caller's concern.
type Connection struct {
	Server      string
	Credentials Credentials
}

// BuildConnection is a factory method for Connection.
// Returns an error if the server is empty.
func BuildConnection(server string, credentials Credentials) (Connection, error) {
	if server == "" {
		return Connection{}, ErrEmptyServer
	}

	return Connection{Server: server, Credentials: credentials}, nil
}

// BaseURL returns the server as an absolute URL, defaulting to https when
// no scheme was supplied.
func (c Connection) BaseURL() string {
	if strings.Contains(c.Server, "://") {
		return strings.TrimSuffix(c.Server, "/")
	}

	return "https://" + strings.TrimSuffix(c.Server, "/")
}
