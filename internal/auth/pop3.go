package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/core"

	"github.com/knadh/go-pop3"
)

// POP3Provider authenticates with a USER/PASS exchange against the
// configured POP3 server. It has the same shape as the IMAP provider
// with one policy difference: when the TLS flag is off the connection
// stays plaintext, with no STLS upgrade attempt.
type POP3Provider struct {
	config *config.Config
	client MailClient
}

// NewPOP3Provider creates a new POP3 authentication provider.
func NewPOP3Provider(cfg *config.Config) *POP3Provider {
	return &POP3Provider{
		config: cfg,
		client: &pop3MailClient{timeout: cfg.RemoteTimeout},
	}
}

// Authenticate verifies credentials against the POP3 server.
func (p *POP3Provider) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Result, error) {
	if p.config.POP3Server == "" || p.config.POP3Port == 0 {
		return nil, fmt.Errorf("%w: pop3 auth server or port not set", ErrConfigIncomplete)
	}
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	settings := &core.ConnectionSettings{
		Backend:    string(BackendPOP3),
		Server:     p.config.POP3Server,
		Port:       p.config.POP3Port,
		TLS:        p.config.POP3TLS,
		Username:   username,
		Credential: password,
	}

	state, err := p.client.Connect(ctx, settings)
	switch state {
	case StateAuthenticated:
		return &core.Result{
			Username:   username,
			Success:    true,
			Connection: settings,
		}, nil
	case StateConnected:
		return nil, fmt.Errorf("%w: %v", ErrCredentialsRejected, err)
	default:
		return nil, fmt.Errorf("%w: %s:%d: %v",
			ErrBackendUnreachable, p.config.POP3Server, p.config.POP3Port, err)
	}
}

// Name returns provider name for logging
func (p *POP3Provider) Name() string {
	return string(BackendPOP3)
}

type pop3MailClient struct {
	timeout time.Duration
}

func (c *pop3MailClient) Connect(
	ctx context.Context,
	settings *core.ConnectionSettings,
) (ConnState, error) {
	client := pop3.New(pop3.Opt{
		Host:        settings.Server,
		Port:        settings.Port,
		TLSEnabled:  settings.TLS,
		DialTimeout: c.timeout,
	})

	conn, err := client.NewConn()
	if err != nil {
		return StateUnreachable, err
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Auth(settings.Username, settings.Credential); err != nil {
		return StateConnected, err
	}
	return StateAuthenticated, nil
}
