// Package batch orchestrates a validation run: strictly sequential,
// order-preserving, one output row per input row, with per-row failures
// contained so a single bad row never aborts the run.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/uspsbatch/internal/record"
	"github.com/kestrelworks/uspsbatch/internal/telemetry"
	"github.com/kestrelworks/uspsbatch/internal/usps"
)

// ErrMissingToken is returned when a run starts without a bearer token.
// Fatal before any row is processed.
var ErrMissingToken = errors.New("no OAuth token found; refresh a token first")

// Validator validates one row. Satisfied by *usps.Client.
type Validator interface {
	Validate(ctx context.Context, rec *record.Record, token string) usps.Result
}

// TokenRefresher fetches a fresh bearer token. Satisfied by
// *usps.TokenProvider. Only consulted when RefreshOnUnauthorized is enabled.
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Config contains options for a Runner.
type Config struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional; nil records nothing.
	Metrics *telemetry.Metrics

	// RefreshOnUnauthorized enables a single mid-run token refresh: when a
	// row is rejected with HTTP 401, the token is refreshed once through
	// Tokens, that row is retried once, and the run continues on the new
	// token. Off by default; the historical behavior is to surface the 401
	// as an ordinary row error.
	RefreshOnUnauthorized bool

	// Tokens is required when RefreshOnUnauthorized is set.
	Tokens TokenRefresher
}

// Runner processes an input record set through a Validator.
type Runner struct {
	validator Validator
	logger    *slog.Logger
	metrics   *telemetry.Metrics

	refreshOnUnauthorized bool
	tokens                TokenRefresher
}

// NewRunner creates a batch runner.
func NewRunner(v Validator, cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		validator:             v,
		logger:                logger,
		metrics:               cfg.Metrics,
		refreshOnUnauthorized: cfg.RefreshOnUnauthorized,
		tokens:                cfg.Tokens,
	}
}

// Run validates every row in order and returns one output row per input row.
// The token is read once and held for the whole run. Row-level failures are
// accumulated as ValidationError rows, never returned as an error.
func (r *Runner) Run(ctx context.Context, rows []*record.Record, token string) ([]*record.Record, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	logger := r.logger.With("run_id", uuid.NewString())
	logger.Info("starting validation run", "rows", len(rows))

	out := make([]*record.Record, 0, len(rows))
	standardized, rejected := 0, 0
	refreshed := false

	for i, row := range rows {
		record.EnsureIdentifiers(row)

		start := time.Now()
		res := r.validator.Validate(ctx, row, token)

		if rej, ok := res.(usps.Rejected); ok && rej.StatusCode == http.StatusUnauthorized && r.refreshOnUnauthorized && !refreshed {
			refreshed = true
			fresh, err := r.tokens.Refresh(ctx)
			if err != nil {
				logger.Warn("token refresh after 401 failed", "row", i, "error", err)
			} else {
				token = fresh
				res = r.validator.Validate(ctx, row, token)
			}
		}

		switch v := res.(type) {
		case usps.Rejected:
			rejected++
			r.metrics.ObserveRow(telemetry.OutcomeRejected, time.Since(start))
			logger.Warn("row rejected", "row", i, "reason", v.Reason)
		default:
			standardized++
			r.metrics.ObserveRow(telemetry.OutcomeStandardized, time.Since(start))
		}

		out = append(out, res.Row())
	}

	logger.Info("validation run complete",
		"rows", len(rows),
		"standardized", standardized,
		"rejected", rejected,
	)
	return out, nil
}
