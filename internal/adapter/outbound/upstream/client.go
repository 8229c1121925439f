// Package upstream issues the resolved HTTP calls against the weather and
// D-ATIS providers and classifies the raw outcome. No retries happen here;
// retry policy, if any, belongs to the caller.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/cavok/wxbrief/internal/domain"
)

// Client performs upstream GETs with the shared http.Client injected from
// main. The injected client carries the timeout bound; context cancellation
// aborts an in-flight request.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// New creates an upstream client. A nil httpClient falls back to
// http.DefaultClient.
func New(httpClient *http.Client, userAgent string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger.With("component", "upstream_client"),
	}
}

// Do executes the resolved endpoint and returns the raw response, body kept
// byte-for-byte. Failures are classified into the invocation taxonomy:
// timeout, connection_error, or upstream_http_error for non-2xx statuses.
func (c *Client) Do(ctx context.Context, tool string, ep domain.UpstreamEndpoint) (*domain.UpstreamResponse, error) {
	finalURL := ep.URL()
	log := c.logger.With(
		slog.String("tool", tool),
		slog.String("provider", string(ep.Provider)),
		slog.String("url", finalURL),
	)

	req, err := http.NewRequestWithContext(ctx, ep.Method, finalURL, nil)
	if err != nil {
		// Resolution only produces well-formed URLs; a failure here means a
		// broken base URL from configuration.
		return nil, &domain.InvocationError{
			Kind: domain.ErrKindConnection,
			Tool: tool,
			Msg:  fmt.Sprintf("invalid upstream URL %s", finalURL),
			Err:  err,
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debug("Executing upstream request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := domain.ErrKindConnection
		msg := "upstream provider unreachable"
		if isTimeout(err) {
			kind = domain.ErrKindTimeout
			msg = "upstream request exceeded the timeout bound"
		}
		log.Warn("Upstream request failed", slog.String("kind", string(kind)), slog.Any("error", err))
		return nil, &domain.InvocationError{Kind: kind, Tool: tool, Msg: msg, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		kind := domain.ErrKindConnection
		if isTimeout(err) {
			kind = domain.ErrKindTimeout
		}
		log.Warn("Failed to read upstream body", slog.Any("error", err))
		return nil, &domain.InvocationError{
			Kind: kind,
			Tool: tool,
			Msg:  "failed to read upstream response body",
			Err:  err,
		}
	}

	log = log.With(slog.Int("status_code", resp.StatusCode), slog.Int("body_bytes", len(body)))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("Upstream rejected the request")
		return nil, &domain.InvocationError{
			Kind:   domain.ErrKindUpstreamHTTP,
			Tool:   tool,
			Status: resp.StatusCode,
			Msg:    snippet(body),
		}
	}

	log.Debug("Upstream request succeeded")
	return &domain.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// isTimeout distinguishes deadline expiry from other transport failures.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// snippet bounds the body fragment included in error messages.
func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
