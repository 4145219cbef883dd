package auth

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/core"

	"github.com/go-ldap/ldap/v3"
)

// ldapConn is the subset of *ldap.Conn the provider needs, split out so
// tests can observe the bind without a directory server.
type ldapConn interface {
	Bind(username, password string) error
	Close() error
}

// LDAPProvider authenticates with a simple bind against the configured
// directory server. No connection settings are exported: the directory
// is an identity source only, not a mail source.
type LDAPProvider struct {
	config *config.Config
	dial   func(url string, useTLS bool, server string, timeout time.Duration) (ldapConn, error)
}

// NewLDAPProvider creates a new LDAP bind authentication provider.
func NewLDAPProvider(cfg *config.Config) *LDAPProvider {
	return &LDAPProvider{
		config: cfg,
		dial:   dialLDAP,
	}
}

// Authenticate verifies credentials with an LDAP bind.
func (p *LDAPProvider) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Result, error) {
	cfg := p.config
	if cfg.LDAPServer == "" || cfg.LDAPPort == 0 || cfg.LDAPBaseDN == "" {
		return nil, fmt.Errorf("%w: ldap auth server, port or base dn not set", ErrConfigIncomplete)
	}
	// An empty password would turn the bind into an anonymous bind,
	// which most directories report as success.
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	attr := cfg.LDAPUIDAttribute
	if attr == "" {
		attr = "uid"
	}
	// The username is escaped before it is embedded in the DN so that
	// crafted input cannot alter the bind identity.
	bindDN := fmt.Sprintf("%s=%s,%s", attr, ldap.EscapeDN(username), cfg.LDAPBaseDN)

	scheme := "ldap"
	if cfg.LDAPTLS {
		scheme = "ldaps"
	}
	url := fmt.Sprintf("%s://%s", scheme,
		net.JoinHostPort(cfg.LDAPServer, strconv.Itoa(cfg.LDAPPort)))

	conn, err := p.dial(url, cfg.LDAPTLS, cfg.LDAPServer, cfg.RemoteTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s:%d: %v",
			ErrBackendUnreachable, cfg.LDAPServer, cfg.LDAPPort, err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Bind(bindDN, password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentialsRejected, err)
	}

	return &core.Result{
		Username: username,
		Success:  true,
	}, nil
}

// Name returns provider name for logging
func (p *LDAPProvider) Name() string {
	return string(BackendLDAP)
}

func dialLDAP(url string, useTLS bool, server string, timeout time.Duration) (ldapConn, error) {
	opts := []ldap.DialOpt{
		ldap.DialWithDialer(&net.Dialer{Timeout: timeout}),
	}
	if useTLS {
		opts = append(opts, ldap.DialWithTLSConfig(&tls.Config{
			ServerName: server,
			MinVersion: tls.VersionTLS12,
		}))
	}

	conn, err := ldap.DialURL(url, opts...)
	if err != nil {
		return nil, err
	}
	conn.SetTimeout(timeout)
	return conn, nil
}
