package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	tritonEndpoint  = "https://np.ironhelmet.com/api"
	proteusEndpoint = "https://proteus.ironhelmet.com/api"

	apiVersion     = "0.1"
	defaultTimeout = 30 * time.Second
	maxPayloadSize = 4 << 20
)

// Client fetches raw snapshot payloads from the upstream APIs. It only moves
// bytes; parsing is the normalizers' job.
type Client struct {
	httpClient *http.Client
	endpoints  map[string]string
}

type ClientOption func(*Client)

// WithEndpoint overrides a provider's URL, used by tests and self-hosted
// mirrors.
func WithEndpoint(tag, endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoints[tag] = endpoint
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoints: map[string]string{
			TagTriton:  tritonEndpoint,
			TagProteus: proteusEndpoint,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSnapshot posts the game number and API code to the provider and
// returns the raw response body.
func (c *Client) FetchSnapshot(ctx context.Context, tag string, number int64, code string) ([]byte, error) {
	endpoint, ok := c.endpoints[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, tag)
	}

	form := url.Values{
		"game_number": {strconv.FormatInt(number, 10)},
		"code":        {code},
		"api_version": {apiVersion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot fetch failed for game %d: %w", number, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot fetch for game %d returned status %d", number, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body for game %d: %w", number, err)
	}
	return body, nil
}
