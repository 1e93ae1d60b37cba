package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kestrelworks/uspsbatch/internal/crypto"
)

// File stores secrets in a JSON file with every value encrypted using
// AES-256-GCM. A fallback for hosts without a usable OS keychain
// (headless servers, CI).
type File struct {
	path string
	enc  crypto.Encryptor

	mu sync.Mutex
}

// NewFile creates a file-backed store at path. The key must be a 32-byte
// AES-256 key.
func NewFile(path string, key []byte) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("credential file path is required")
	}
	enc, err := crypto.NewAESEncryptor(key)
	if err != nil {
		return nil, fmt.Errorf("initializing credential encryption: %w", err)
	}
	return &File{path: path, enc: enc}, nil
}

// Get retrieves and decrypts a secret.
func (f *File) Get(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	secrets, err := f.load()
	if err != nil {
		return "", err
	}

	ciphertext, ok := secrets[name]
	if !ok {
		return "", ErrNotFound
	}

	plaintext, err := f.enc.Decrypt([]byte(ciphertext))
	if err != nil {
		return "", fmt.Errorf("decrypting %s: %w", name, err)
	}
	return string(plaintext), nil
}

// Set encrypts and stores a secret, rewriting the whole file.
func (f *File) Set(ctx context.Context, name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	secrets, err := f.load()
	if err != nil {
		return err
	}

	ciphertext, err := f.enc.Encrypt([]byte(value))
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", name, err)
	}
	secrets[name] = string(ciphertext)

	data, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding secrets file: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating secrets directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing secrets file: %w", err)
	}
	return nil
}

// load reads the secrets file; a missing file is an empty store.
func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	secrets := make(map[string]string)
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}
	return secrets, nil
}
