package auth

import (
	"context"

	"github.com/Pyons/cypht/internal/core"
)

// ConnState is the three-way outcome of an attempt to reach and
// authenticate against a remote mail server.
type ConnState int

const (
	// StateUnreachable means no connection was established.
	StateUnreachable ConnState = iota
	// StateConnected means the server answered but rejected the
	// credentials.
	StateConnected
	// StateAuthenticated means the server accepted the credentials.
	StateAuthenticated
)

// MailClient dials the server described by settings and runs the
// protocol's native authentication step with settings.Username and
// settings.Credential. On StateAuthenticated it may fill
// settings.Capabilities with whatever the server advertised. The
// returned error carries remote-reported detail for the other two
// states.
//
// Implementations close their connection before returning; the settings
// record, not a live socket, is what gets handed to the session.
type MailClient interface {
	Connect(ctx context.Context, settings *core.ConnectionSettings) (ConnState, error)
}
