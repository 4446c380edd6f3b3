package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/omarshaarawi/sleeperbot/internal/config"
)

const DefaultBaseURL = "https://api.sleeper.app/v1"

// FetchError is returned when a Sleeper call fails or returns a body that
// cannot be decoded.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("sleeper %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("sleeper %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError unwraps err into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(cfg config.Sleeper) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 600
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
	}
}

// Get fetches endpoint and decodes the JSON body into result. A JSON null
// body leaves result untouched.
func (c *Client) Get(ctx context.Context, endpoint string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{Op: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &FetchError{Op: endpoint, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: endpoint, Err: fmt.Errorf("error making request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: endpoint, Err: fmt.Errorf("error reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(body, 200))}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &FetchError{Op: endpoint, Err: fmt.Errorf("error decoding response: %w", err)}
	}

	return nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
