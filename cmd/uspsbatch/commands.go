package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kestrelworks/uspsbatch/internal"
	"github.com/kestrelworks/uspsbatch/internal/batch"
	"github.com/kestrelworks/uspsbatch/internal/credstore"
	"github.com/kestrelworks/uspsbatch/internal/tabular"
	"github.com/kestrelworks/uspsbatch/internal/telemetry"
	"github.com/kestrelworks/uspsbatch/internal/usps"
)

func newRootCmd(cfg *internal.Config, logger *slog.Logger, store credstore.Store) *cobra.Command {
	root := &cobra.Command{
		Use:           "uspsbatch",
		Short:         "Bulk address standardization against the USPS Addresses 3.0 API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	uspsCfg := usps.Config{
		TokenURL:    cfg.USPS.TokenURL,
		ValidateURL: cfg.USPS.ValidateURL,
		Timeout:     time.Duration(cfg.USPS.TimeoutSeconds) * time.Second,
		Logger:      logger,
		Metrics:     telemetry.New(prometheus.DefaultRegisterer),
	}

	root.AddCommand(
		newCredentialsCmd(store),
		newTokenCmd(uspsCfg, store),
		newValidateCmd(cfg, uspsCfg, logger, store),
	)
	return root
}

func newCredentialsCmd(store credstore.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the stored USPS client credentials",
	}

	var clientID, clientSecret string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store the USPS client ID and client secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(clientID)
			secret := strings.TrimSpace(clientSecret)
			if id == "" || secret == "" {
				return fmt.Errorf("client ID/secret cannot be empty")
			}

			ctx := cmd.Context()
			if err := credstore.SetClientID(ctx, store, id); err != nil {
				return err
			}
			if err := credstore.SetClientSecret(ctx, store, secret); err != nil {
				return err
			}
			cmd.Println("Client credentials stored. Now run 'uspsbatch token refresh'.")
			return nil
		},
	}
	set.Flags().StringVar(&clientID, "client-id", "", "USPS client ID")
	set.Flags().StringVar(&clientSecret, "client-secret", "", "USPS client secret")
	_ = set.MarkFlagRequired("client-id")
	_ = set.MarkFlagRequired("client-secret")

	cmd.AddCommand(set)
	return cmd
}

func newTokenCmd(uspsCfg usps.Config, store credstore.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored OAuth token",
	}

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored credentials for a new OAuth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := usps.NewTokenProvider(uspsCfg, store)
			token, err := provider.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Received OAuth token: %.12s...\n", token)
			return nil
		},
	}

	cmd.AddCommand(refresh)
	return cmd
}

func newValidateCmd(cfg *internal.Config, uspsCfg usps.Config, logger *slog.Logger, store credstore.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate every address row in a CSV or XLSX file",
		Long: "Reads FILE, standardizes each row against the USPS API, and writes the " +
			"enriched rows to <name>_validated<ext> next to the input. Rows that fail " +
			"validation get a ValidationError column instead of aborting the run.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			format, err := tabular.ForPath(path)
			if err != nil {
				return err
			}

			rows, err := format.Read(path)
			if err != nil {
				return fmt.Errorf("could not read the input file: %w", err)
			}

			token, err := credstore.Token(ctx, store)
			if err != nil && !errors.Is(err, credstore.ErrNotFound) {
				return fmt.Errorf("reading stored token: %w", err)
			}

			runner := batch.NewRunner(usps.NewClient(uspsCfg), batch.Config{
				Logger:                logger,
				Metrics:               uspsCfg.Metrics,
				RefreshOnUnauthorized: cfg.Batch.RefreshOnUnauthorized,
				Tokens:                usps.NewTokenProvider(uspsCfg, store),
			})

			out, err := runner.Run(ctx, rows, token)
			if err != nil {
				return err
			}

			outPath := tabular.OutputPath(path)
			if err := format.Write(outPath, out); err != nil {
				return fmt.Errorf("validation completed but saving the output failed: %w", err)
			}

			cmd.Printf("Validated file saved as %s (%d rows)\n", outPath, len(out))
			return nil
		},
	}
}
