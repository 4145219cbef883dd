package bootstrap

import (
	"log"
	"strings"

	"github.com/Pyons/cypht/internal/config"
)

// validateConfiguration fails fast on settings that can never work and
// warns about ones that are merely dangerous.
func validateConfiguration(cfg *config.Config) {
	if !config.IsValidAuthMode(cfg.AuthMode) {
		log.Fatalf("Invalid AUTH_MODE %q (valid: %s)",
			cfg.AuthMode, strings.Join(config.ValidAuthModes(), ", "))
	}

	if cfg.AuthMode == config.AuthModeNone {
		log.Println("WARNING: AUTH_MODE=none accepts any credentials; never use it in production")
	}

	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET not set; an ephemeral secret will be generated and sessions will not survive restarts")
	}

	// Missing remote settings are not fatal here: the provider reports
	// them per attempt and verification resolves to a failed login.
	switch cfg.AuthMode {
	case config.AuthModeIMAP:
		if cfg.IMAPServer == "" || cfg.IMAPPort == 0 {
			log.Println("WARNING: IMAP_AUTH_SERVER/IMAP_AUTH_PORT not set; every login will fail")
		}
	case config.AuthModePOP3:
		if cfg.POP3Server == "" || cfg.POP3Port == 0 {
			log.Println("WARNING: POP3_AUTH_SERVER/POP3_AUTH_PORT not set; every login will fail")
		}
	case config.AuthModeLDAP:
		if cfg.LDAPServer == "" || cfg.LDAPPort == 0 || cfg.LDAPBaseDN == "" {
			log.Println("WARNING: LDAP_AUTH_SERVER/LDAP_AUTH_PORT/LDAP_AUTH_BASE_DN not set; every login will fail")
		}
	}
}
