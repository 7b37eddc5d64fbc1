package auth

import (
	"errors"

	"backdrop/internal/util"
)

const ServiceName = "backdrop"

var ErrTokenNotFound = errors.New("auth token not found")

// Store persists bearer tokens for asset hosts.
type Store interface {
	SetToken(host string, token string) error
	GetToken(host string) (string, error)
	DeleteToken(host string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeHost normalizes an asset host name for consistent key lookup.
func NormalizeHost(host string) string {
	return util.NormalizeKey(host)
}

// TokenFunc adapts a store to the prefetch token lookup shape: it
// returns the stored token for host, or ok=false when none exists.
func TokenFunc(store Store) func(host string) (string, bool) {
	return func(host string) (string, bool) {
		token, err := store.GetToken(host)
		if err != nil {
			return "", false
		}
		return token, true
	}
}
