package monobank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jarwatch/jarwatch/internal/config"
)

// retryDelay is the base backoff between fetch attempts; attempt n waits
// n * retryDelay.
var retryDelay = 2 * time.Second

// Jar is one donation jar from the client-info response. Balance and Goal
// are in minor currency units; Goal is 0 when no target is configured.
type Jar struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Balance int64  `json:"balance"`
	Goal    int64  `json:"goal"`
}

type clientInfo struct {
	Name string `json:"name"`
	Jars []Jar  `json:"jars"`
}

// Client handles integration with the Monobank personal API
type Client struct {
	token   string
	url     string
	retries int
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new Monobank client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		token:   cfg.MonobankToken,
		url:     cfg.MonobankAPIURL,
		retries: cfg.FetchRetries,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// FetchJars retrieves the current jar balances, retrying transient failures
// with a linear backoff
func (c *Client) FetchJars(ctx context.Context) ([]Jar, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		jars, err := c.fetchOnce(ctx)
		if err == nil {
			c.log.Infof("Fetched %d jars from Monobank", len(jars))
			return jars, nil
		}
		lastErr = err
		c.log.Warnf("Monobank fetch attempt %d/%d failed: %v", attempt, c.retries, err)

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("monobank request failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]Jar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/personal/client-info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Monobank response: %s", string(body))

	var info clientInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return info.Jars, nil
}
