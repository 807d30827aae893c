package client

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader correlates a request with backend logs.
const RequestIDHeader = "X-Request-ID"

// headerTransport adds the client's default headers to every request that
// does not already set them.
type headerTransport struct {
	base      http.RoundTripper
	headers   http.Header
	apiKey    string
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	// Defaults never replace a header the request already carries, so
	// multipart boundaries and per-call values survive.
	for k, vs := range t.headers {
		if len(cloned.Header.Values(k)) > 0 {
			continue
		}
		for _, v := range vs {
			cloned.Header.Add(k, v)
		}
	}
	if t.apiKey != "" {
		cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	if t.userAgent != "" {
		cloned.Header.Set("User-Agent", t.userAgent)
	}
	if cloned.Header.Get(RequestIDHeader) == "" {
		cloned.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}

// restyLogger routes resty's internal warnings into zerolog.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
