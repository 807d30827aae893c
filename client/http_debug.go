package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// debugTransport logs every HTTP request and response at debug level.
//
// Purpose:
//   - Troubleshoot backend communication (timeouts, rejected uploads, unexpected bodies)
//   - Inspect the headers each call carries, including X-Request-ID and Authorization
//   - Check multipart field names and JSON payloads while integrating new endpoints
//
// When to use:
//   - Set HEALTHCARE_DEBUG=true or DEBUG=true, or pass WithDebugLogging(true)
//   - During local development against the backend or the fake backend
//   - When chasing a failing request in CI, with the log level raised to debug
//
// Security considerations:
//   - Dumps contain patient records, chat text and bearer tokens
//   - Never enable against production data; keep the log sink private
//
// Performance impact:
//   - Every response body is buffered in full for the dump
//   - Multipart request bodies are not dumped, only their headers
//
// Example usage:
//
//	export HEALTHCARE_DEBUG=true
//	healthctl patients list  # all HTTP traffic is logged to stderr
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Multipart uploads can be large; only headers are dumped for them.
	withBody := !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/")
	if reqDump, err := httputil.DumpRequestOut(req, withBody); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether debug logging was switched on through
// the environment.
//
// Recognised variables, checked in order:
//   - HEALTHCARE_DEBUG=true: scoped to this client
//   - DEBUG=true: the generic switch shared with other tools
//
// Any other value, including "1" or "TRUE", leaves debug logging off. New
// calls this once, so changing the environment afterwards has no effect on
// an existing Client.
func debugLoggingRequested() bool {
	return os.Getenv("HEALTHCARE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
