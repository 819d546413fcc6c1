package hcloud

import (
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Timeouts bounds the long-running API operations.
type Timeouts struct {
	ServerCreate      time.Duration
	Delete            time.Duration
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

// DefaultTimeouts returns the timeouts used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		ServerCreate:      10 * time.Minute,
		Delete:            5 * time.Minute,
		RetryMaxAttempts:  5,
		RetryInitialDelay: time.Second,
	}
}

// CallObserver is told about every API call by operation name and
// Classify result.
type CallObserver func(operation, result string)

// RealClient implements Client using the Hetzner Cloud API.
type RealClient struct {
	client   *hcloud.Client
	timeouts Timeouts
	observe  CallObserver
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *RealClient) {
		c.client = hc
	}
}

// WithCallObserver registers a callback for API call accounting.
func WithCallObserver(o CallObserver) ClientOption {
	return func(c *RealClient) {
		c.observe = o
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		client:   hcloud.NewClient(hcloud.WithToken(token), hcloud.WithApplication("noderefresh", "")),
		timeouts: DefaultTimeouts(),
		observe:  func(string, string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RealClient) record(operation string, err error) {
	c.observe(operation, string(Classify(err)))
}
