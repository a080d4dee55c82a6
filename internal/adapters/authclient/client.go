// Package authclient lets a resource service trust callers by asking the auth
// service to validate their bearer tokens.
package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vncsmyrnk/jarvis/internal/bearer"
	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

const (
	validatePath    = "/auth/validate"
	requestIDHeader = "X-Request-Id"
	maxBodyBytes    = 1 << 20
)

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

var _ ports.IdentityResolver = (*Client)(nil)

func (c *Client) ResolveIdentity(r *http.Request) (*domain.Identity, error) {
	tok, err := bearer.FromRequest(r)
	if err != nil {
		return nil, err
	}
	return c.Validate(r.Context(), tok)
}

// Validate calls GET /auth/validate once. It never retries and never caches.
func (c *Client) Validate(ctx context.Context, token string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + validatePath + "?" + url.Values{"token": {token}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamError, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		drain(resp.Body)
		return nil, domain.ErrUnauthenticated
	default:
		drain(resp.Body)
		c.log.Warn(ctx, "auth service returned unexpected status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamError, resp.StatusCode)
	}

	var ident domain.Identity
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&ident); err != nil {
		return nil, fmt.Errorf("%w: decode identity: %v", domain.ErrUpstreamError, err)
	}
	if ident.ID == 0 {
		return nil, fmt.Errorf("%w: identity without id", domain.ErrUpstreamError)
	}
	return &ident, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		c.log.Warn(ctx, "auth service timed out", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	default:
		c.log.Warn(ctx, "auth service unreachable", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, maxBodyBytes))
}
