// Package compliance wraps the external address-screening provider.
// When no provider is configured the client passes everything; once a
// provider is set, transport failures fail closed at the caller.
package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"meridian-api/internal/logger"
)

// RetryConfig configures retry behavior against the screening provider.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig provides sensible defaults for retries.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  15 * time.Second,
	}
}

// Client screens transfer counterparties via an external provider.
// Its methods report whether the screen PASSED.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retry      RetryConfig
	logger     *zap.Logger
}

// NewClient creates a screening client. An empty baseURL yields a
// pass-through client that screens nothing out.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		retry:      DefaultRetryConfig(),
		logger:     logger.Log,
	}
}

type screenResponse struct {
	Flagged    bool   `json:"flagged"`
	Sanctioned bool   `json:"sanctioned"`
	Category   string `json:"category"`
}

// CheckAddress reports whether the destination address passed risk
// screening. Errors are surfaced so callers can fail closed.
func (c *Client) CheckAddress(ctx context.Context, address string) (bool, error) {
	if c.baseURL == "" {
		return true, nil
	}
	result, err := c.screen(ctx, "/v1/screen/address", map[string]string{"address": address})
	if err != nil {
		return false, fmt.Errorf("address screening unavailable: %w", err)
	}
	return !result.Flagged, nil
}

// CheckSanctions reports whether both counterparties and the user's
// country passed sanctions screening.
func (c *Client) CheckSanctions(ctx context.Context, fromAddress, toAddress, country string) (bool, error) {
	if c.baseURL == "" {
		return true, nil
	}
	result, err := c.screen(ctx, "/v1/screen/sanctions", map[string]string{
		"from_address": fromAddress,
		"to_address":   toAddress,
		"country":      country,
	})
	if err != nil {
		return false, fmt.Errorf("sanctions screening unavailable: %w", err)
	}
	return !result.Sanctioned && !result.Flagged, nil
}

func (c *Client) screen(ctx context.Context, path string, params map[string]string) (*screenResponse, error) {
	var result *screenResponse

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		q := req.URL.Query()
		for key, value := range params {
			q.Set(key, value)
		}
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("retryable status code: %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("screening provider returned %d: %s", resp.StatusCode, string(body)))
		}

		var decoded screenResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode screening response: %w", err))
		}
		result = &decoded
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.retry.InitialInterval
	expBackoff.MaxInterval = c.retry.MaxInterval
	expBackoff.MaxElapsedTime = c.retry.MaxElapsedTime

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(c.retry.MaxRetries)), ctx))
	if err != nil {
		c.logger.Error("screening request failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}
