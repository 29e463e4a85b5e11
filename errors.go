package pagepulse

import "errors"

// Exported errors for library consumers.
var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("pagepulse: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("pagepulse: client is closed")
)
