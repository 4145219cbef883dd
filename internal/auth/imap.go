package auth

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/core"

	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPProvider authenticates by logging in to the configured IMAP
// server with the supplied credentials. On success the connection
// settings are handed back so the mail modules can reuse the same
// server without prompting again.
type IMAPProvider struct {
	config *config.Config
	client MailClient
}

// NewIMAPProvider creates a new IMAP authentication provider.
func NewIMAPProvider(cfg *config.Config) *IMAPProvider {
	return &IMAPProvider{
		config: cfg,
		client: &imapMailClient{timeout: cfg.RemoteTimeout},
	}
}

// Authenticate verifies credentials against the IMAP server.
func (p *IMAPProvider) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Result, error) {
	if p.config.IMAPServer == "" || p.config.IMAPPort == 0 {
		return nil, fmt.Errorf("%w: imap auth server or port not set", ErrConfigIncomplete)
	}
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	settings := &core.ConnectionSettings{
		Backend:    string(BackendIMAP),
		Server:     p.config.IMAPServer,
		Port:       p.config.IMAPPort,
		TLS:        p.config.IMAPTLS,
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
			ErrBackendUnreachable, p.config.IMAPServer, p.config.IMAPPort, err)
	}
}

// Name returns provider name for logging
func (p *IMAPProvider) Name() string {
	return string(BackendIMAP)
}

// imapMailClient connects with implicit TLS when the TLS flag is set
// and otherwise dials plaintext with a STARTTLS upgrade, the protocol's
// default extension negotiation.
type imapMailClient struct {
	timeout time.Duration
}

func (c *imapMailClient) Connect(
	ctx context.Context,
	settings *core.ConnectionSettings,
) (ConnState, error) {
	addr := net.JoinHostPort(settings.Server, strconv.Itoa(settings.Port))
	options := &imapclient.Options{
		TLSConfig: &tls.Config{ServerName: settings.Server, MinVersion: tls.VersionTLS12},
	}
	dialer := &net.Dialer{Timeout: c.timeout}

	var client *imapclient.Client
	if settings.TLS {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, options.TLSConfig)
		if err != nil {
			return StateUnreachable, err
		}
		client = imapclient.New(conn, options)
	} else {
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return StateUnreachable, err
		}
		client, err = imapclient.NewStartTLS(conn, options)
		if err != nil {
			return StateUnreachable, err
		}
	}
	defer client.Close()

	if err := client.Login(settings.Username, settings.Credential).Wait(); err != nil {
		return StateConnected, err
	}

	caps := make([]string, 0, len(client.Caps()))
	for name := range client.Caps() {
		caps = append(caps, string(name))
	}
	sort.Strings(caps)
	settings.Capabilities = caps

	if err := client.Logout().Wait(); err != nil {
		// Already authenticated; a noisy logout does not change the outcome.
		return StateAuthenticated, nil
	}
	return StateAuthenticated, nil
}
