package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring stores secrets in the operating system keychain
// (Secret Service on Linux, Keychain on macOS, Credential Manager on Windows).
type Keyring struct {
	service string
}

// NewKeyring creates a keychain-backed store under the fixed service name.
func NewKeyring() *Keyring {
	return &Keyring{service: ServiceName}
}

// Get retrieves a secret from the OS keychain.
func (k *Keyring) Get(ctx context.Context, name string) (string, error) {
	value, err := keyring.Get(k.service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading %s from keyring: %w", name, err)
	}
	return value, nil
}

// Set stores a secret in the OS keychain.
func (k *Keyring) Set(ctx context.Context, name, value string) error {
	if err := keyring.Set(k.service, name, value); err != nil {
		return fmt.Errorf("writing %s to keyring: %w", name, err)
	}
	return nil
}
