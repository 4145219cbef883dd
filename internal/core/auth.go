package core

import "context"

// ConnectionSettings captures the parameters of an authenticated remote
// mail connection so that later components (e.g. the mail fetcher) can
// reopen the same channel without prompting the user again.
//
// A settings record is built fresh for every authentication attempt
// against a remote backend and is discarded unless the attempt succeeds.
// Providers never retain it after returning.
type ConnectionSettings struct {
	Backend      string   // backend kind that produced the record ("imap", "pop3")
	Server       string   // remote server hostname
	Port         int      // remote server port
	TLS          bool     // whether the connection used TLS
	Username     string   // username accepted by the remote server
	Credential   string   // credential for reconnecting the same channel
	Capabilities []string // capability names advertised by the server, if any
}

// Result holds the outcome of an authentication attempt.
//
// Connection is non-nil only when a remote backend authenticated
// successfully. The caller, not the provider, is responsible for pushing
// it into the session.
type Result struct {
	Username   string
	Success    bool
	Connection *ConnectionSettings
}

// AuthProvider is the interface that password-based authentication
// backends must implement.
//
// Authenticate reports invalid credentials, unreachable servers, and
// incomplete configuration through its error return. The error text is
// operator-facing only: the service layer logs it and collapses every
// failure to the same negative outcome for callers.
type AuthProvider interface {
	Authenticate(ctx context.Context, username, password string) (*Result, error)
	Name() string
}
