package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied before the header and metrics wrappers are installed,
// so transport-related options (like debug logging) sit underneath them.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on a single request including reading the response.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient injects a custom *http.Client, e.g. for TLS settings or a
// test server's client. A shallow copy is kept so the caller's client is
// not modified when its transport gets wrapped.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Do not enable in production: dumps include
// patient data.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		if _, ok := c.http.Transport.(*debugTransport); ok {
			return nil
		}
		transport := c.http.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: transport}
		return nil
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("header name cannot be empty")
		}
		c.headers.Add(key, value)
		return nil
	}
}

// WithAPIKey sends "Authorization: Bearer <key>" on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		c.apiKey = key
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithLogger sets the logger used for transport warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}
