package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kestrelworks/uspsbatch/internal"
	"github.com/kestrelworks/uspsbatch/internal/credstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Logs go to stderr so stdout stays clean for command output.
	logger := internal.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	store, err := credstore.New(credstore.Config{
		Backend:       cfg.Creds.Backend,
		Path:          cfg.Creds.Path,
		EncryptionKey: cfg.Creds.EncryptionKey,
	})
	if err != nil {
		return fmt.Errorf("credential store initialization failed: %w", err)
	}

	return newRootCmd(cfg, logger, store).Execute()
}
