package fxrates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.frankfurter.app"
	DefaultTimeout = 5 * time.Second

	DefaultRequestsPerSecond = 10
)

// RateSource answers "how many USD is one unit of currency on day".
type RateSource interface {
	Historical(ctx context.Context, day, currency string) (float64, error)
}

// Client queries a frankfurter compatible historical rates API:
//
//	GET {BaseURL}/{YYYY-MM-DD}?from={CCY}&to=USD  ->  {"rates": {"USD": 1.2712}}
type Client struct {
	BaseURL string
	Timeout time.Duration
	HTTP    *http.Client

	// Limiter paces API calls. Nil means unlimited.
	Limiter *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		Timeout: timeout,
		HTTP:    &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultRequestsPerSecond),
	}
}

// SetRateLimit allows requestsPerSecond calls per second with an equal
// burst. Zero or less removes the limit.
func (c *Client) SetRateLimit(requestsPerSecond int) {
	if requestsPerSecond <= 0 {
		c.Limiter = nil
		return
	}
	c.Limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
}

type historicalResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

func (c *Client) Historical(ctx context.Context, day, currency string) (float64, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return 0, err
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + day

	q := u.Query()
	q.Set("from", currency)
	q.Set("to", "USD")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return 0, fmt.Errorf("fx api http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out historicalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode fx api response: %w", err)
	}
	usd, ok := out.Rates["USD"]
	if !ok {
		return 0, fmt.Errorf("fx api response for %s on %s has no USD rate", currency, day)
	}
	if usd <= 0 {
		return 0, fmt.Errorf("fx api returned non-positive rate %v for %s on %s", usd, currency, day)
	}
	return usd, nil
}
