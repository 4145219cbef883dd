package auth

import "github.com/Pyons/cypht/internal/config"

// Backend identifies one interchangeable identity source.
type Backend string

const (
	BackendLocal Backend = config.AuthModeLocal
	BackendIMAP  Backend = config.AuthModeIMAP
	BackendPOP3  Backend = config.AuthModePOP3
	BackendLDAP  Backend = config.AuthModeLDAP
	BackendNone  Backend = config.AuthModeNone
)

// Descriptor carries per-backend properties that must be inspectable
// without constructing a provider.
type Descriptor struct {
	Name Backend

	// InternalAccountStore is true when this process owns the account
	// records, which makes create/delete/change-password meaningful.
	// Remote backends only verify; they never manage accounts.
	InternalAccountStore bool
}

var descriptors = map[Backend]Descriptor{
	BackendLocal: {Name: BackendLocal, InternalAccountStore: true},
	BackendIMAP:  {Name: BackendIMAP},
	BackendPOP3:  {Name: BackendPOP3},
	BackendLDAP:  {Name: BackendLDAP},
	BackendNone:  {Name: BackendNone},
}

// Describe returns the descriptor for a backend kind.
func Describe(b Backend) (Descriptor, bool) {
	d, ok := descriptors[b]
	return d, ok
}

// InternalAccountStore reports whether the backend owns local account
// records.
func (b Backend) InternalAccountStore() bool {
	return descriptors[b].InternalAccountStore
}

// SessionKey returns the backend-specific session key under which
// connection settings are exported after a successful remote login.
func (b Backend) SessionKey() string {
	return string(b) + "_auth_server_settings"
}
