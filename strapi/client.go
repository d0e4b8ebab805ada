// Package strapi is a typed HTTP client for the CloudShip Strapi
// backend: login, product catalog, shipment quotes, and label purchase.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/credstore"
	"github.com/nderose7/shiptrack-app/errs"
)

// DefaultTimeout bounds every request. Timeouts surface as network errors.
const DefaultTimeout = 30 * time.Second

// Client talks to the backend. It holds the base URL and an accessor to
// the credential store; there is no ambient global state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credstore.Store
	logger     *zap.Logger
}

// New creates a Client for the given base URL.
func New(baseURL string, creds credstore.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		creds:  creds,
		logger: logger,
	}
}

// doRequest issues a single JSON request and decodes the response into
// out. Failures are classified: transport problems and unclassified
// non-2xx statuses are network errors, 401/403 are auth errors, and a
// body that does not match out's shape is a decode error. Nothing is
// retried.
func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errs.Network("marshal request", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.Network("create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if authed {
		cred, err := c.creds.Load()
		if err != nil {
			return errs.Auth("authentication data not found", err)
		}
		if expired, ok := tokenExpired(cred.Token); ok && expired {
			c.logger.Warn("stored token is past its expiry",
				zap.String("email", cred.Email),
			)
		}
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Network(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Network("read response", err)
	}

	c.logger.Debug("request completed",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.FromStatus(resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return errs.Decode("decode response", err)
		}
	}
	return nil
}

// tokenExpired peeks at the JWT's exp claim without verifying the
// signature. The second return is false when the token cannot be parsed
// or carries no expiry.
func tokenExpired(token string) (expired, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, false
	}
	if claims.ExpiresAt == nil {
		return false, false
	}
	return claims.ExpiresAt.Before(time.Now()), true
}
