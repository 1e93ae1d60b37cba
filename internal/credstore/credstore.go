// Package credstore persists the three secrets the validator needs: the USPS
// client ID, the client secret, and the current OAuth bearer token. Backends
// share one flat namespace and plain get/set semantics; there is no
// versioning or rotation.
package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/kestrelworks/uspsbatch/internal/crypto"
)

// ServiceName is the namespace under which all secrets are stored.
const ServiceName = "uspsbatch"

// Secret names within the namespace.
const (
	keyClientID     = "client_id"
	keyClientSecret = "client_secret"
	keyToken        = "oauth_token"
)

// ErrNotFound is returned when a secret has never been stored.
var ErrNotFound = errors.New("secret not found")

// Store defines the interface for secret persistence.
// Implementations can use the OS keychain, an encrypted file, or memory.
type Store interface {
	// Get retrieves a secret by name. Returns ErrNotFound when unset.
	Get(ctx context.Context, name string) (string, error)

	// Set stores a secret by name, overwriting any previous value.
	Set(ctx context.Context, name, value string) error
}

// Config selects and configures a Store backend.
type Config struct {
	// Backend is "keyring" (default) or "file".
	Backend string

	// Path is the secrets file location for the file backend.
	Path string

	// EncryptionKey is the base64-encoded 32-byte AES key for the file
	// backend. Secrets in the file are never stored in the clear.
	EncryptionKey string
}

// New creates a Store implementation based on configuration.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "keyring", "":
		return NewKeyring(), nil
	case "file":
		key, err := crypto.DecodeKeyBase64(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("file credential store: %w", err)
		}
		return NewFile(cfg.Path, key)
	default:
		return nil, fmt.Errorf("unknown credential store backend %q", cfg.Backend)
	}
}

// ClientID retrieves the stored USPS client ID.
func ClientID(ctx context.Context, s Store) (string, error) {
	return s.Get(ctx, keyClientID)
}

// SetClientID stores the USPS client ID.
func SetClientID(ctx context.Context, s Store, id string) error {
	return s.Set(ctx, keyClientID, id)
}

// ClientSecret retrieves the stored USPS client secret.
func ClientSecret(ctx context.Context, s Store) (string, error) {
	return s.Get(ctx, keyClientSecret)
}

// SetClientSecret stores the USPS client secret.
func SetClientSecret(ctx context.Context, s Store, secret string) error {
	return s.Set(ctx, keyClientSecret, secret)
}

// Token retrieves the stored OAuth bearer token.
func Token(ctx context.Context, s Store) (string, error) {
	return s.Get(ctx, keyToken)
}

// SetToken stores a new OAuth bearer token.
func SetToken(ctx context.Context, s Store, token string) error {
	return s.Set(ctx, keyToken, token)
}
