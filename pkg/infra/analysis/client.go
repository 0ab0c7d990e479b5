package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/goerr/v2"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultRetryCount    = 3
	defaultRetryWaitTime = 2 * time.Second
)

// Client calls the scintillation analysis API
type Client struct {
	http     *resty.Client
	endpoint string
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRetryCount sets the transport-level retry count. Retries here
// cover connection failures only; a completed cycle is never re-run.
func WithRetryCount(n int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(n)
	}
}

// NewClient creates a client for the given analysis endpoint URL
func NewClient(endpoint string, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetTimeout(defaultTimeout)
	httpClient.SetRetryCount(defaultRetryCount)
	httpClient.SetRetryWaitTime(defaultRetryWaitTime)

	c := &Client{
		http:     httpClient,
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze posts the three input files as one multipart request and
// decodes the JSON response.
func (c *Client) Analyze(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFiles(inputs.Fields()).
		Post(c.endpoint)

	if err != nil {
		return nil, goerr.Wrap(err, "failed to call analysis API", goerr.V("endpoint", c.endpoint))
	}

	if resp.IsError() {
		return nil, goerr.New("analysis API returned non-2xx status",
			goerr.V("status", resp.StatusCode()),
			goerr.V("body", truncate(resp.Body(), 512)),
		)
	}

	var result model.AnalysisResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, goerr.Wrap(err, "failed to parse analysis response",
			goerr.V("body", truncate(resp.Body(), 512)),
		)
	}

	return &result, nil
}

// Ping checks that the endpoint is reachable. Any HTTP response counts
// as reachable; the analysis route itself only accepts POST.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.endpoint)
	if err != nil {
		return goerr.Wrap(err, "analysis API is unreachable", goerr.V("endpoint", c.endpoint))
	}
	if resp.StatusCode() >= 500 {
		return goerr.New("analysis API reported a server error",
			goerr.V("status", resp.StatusCode()),
		)
	}
	return nil
}

func truncate(b []byte, limit int) string {
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
