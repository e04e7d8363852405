package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
)

// Client fetches the official and blue dollar quotes from a
// dolarapi-compatible provider. Transient failures (network errors, 5xx)
// are retried with exponential backoff; 4xx responses are not.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxElapsed time.Duration
	logger     zerolog.Logger
}

// NewClient creates a quote client. maxElapsed bounds the total time spent
// retrying one quote.
func NewClient(baseURL string, timeout, maxElapsed time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxElapsed: maxElapsed,
		logger:     logger,
	}
}

// quote is the provider's payload. Only the sell price is used; movements
// are valued at what the currency costs to buy back.
type quote struct {
	Venta decimal.Decimal `json:"venta"`
}

// Snapshot implements usecase.RateSource.
func (c *Client) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	official, err := c.fetch(ctx, "oficial")
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("fetch official quote: %w", err)
	}

	blue, err := c.fetch(ctx, "blue")
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("fetch blue quote: %w", err)
	}

	return domain.RateSnapshot{
		Official:  official,
		Blue:      blue,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (c *Client) fetch(ctx context.Context, name string) (decimal.Decimal, error) {
	url := c.baseURL + "/v1/dolares/" + name

	var q quote
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("provider returned %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
			return backoff.Permanent(fmt.Errorf("decode quote: %w", err))
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("quote", name).Dur("retry_in", wait).Msg("quote fetch failed")
	}

	policy := backoff.WithContext(
		backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(c.maxElapsed)),
		ctx,
	)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return decimal.Decimal{}, err
	}

	if !q.Venta.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("provider sent non-positive %s quote", name)
	}

	return q.Venta, nil
}
