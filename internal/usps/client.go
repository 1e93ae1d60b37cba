package usps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kestrelworks/uspsbatch/internal/record"
	"github.com/kestrelworks/uspsbatch/internal/telemetry"
)

// MissingFieldsMessage is the ValidationError text for rows that never make
// it to the API.
const MissingFieldsMessage = "Missing required fields (streetAddress/state/city-or-ZIPCode)"

// Client issues address standardization requests. Every failure is contained
// in the per-row Result; Validate never aborts a batch.
type Client struct {
	httpClient  *http.Client
	validateURL string
	logger      *slog.Logger
	metrics     *telemetry.Metrics
}

// NewClient creates a validation client.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient:  cfg.httpClient(),
		validateURL: cfg.validateURL(),
		logger:      cfg.logger(),
		metrics:     cfg.Metrics,
	}
}

// Validate standardizes one row against the USPS API using the given bearer
// token. Progression is linear: build the query, dispatch, parse, enrich.
// Rows ineligible for submission are rejected without any network call.
func (c *Client) Validate(ctx context.Context, rec *record.Record, token string) Result {
	params, ok := BuildAddressQuery(rec)
	if !ok {
		return newRejected(rec, MissingFieldsMessage, 0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.validateURL, nil)
	if err != nil {
		return newRejected(rec, "RequestException: "+err.Error(), 0)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveRequest(time.Since(start))
	if err != nil {
		// Timeouts land here too; a slow row is an ordinary failure.
		return newRejected(rec, "RequestException: "+err.Error(), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newRejected(rec, "RequestException: "+err.Error(), 0)
	}

	if resp.StatusCode != http.StatusOK {
		return newRejected(rec, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)), resp.StatusCode)
	}

	var payload validateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return newRejected(rec, "Invalid JSON in response", 0)
	}

	return enrich(rec, payload)
}
