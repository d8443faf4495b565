package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/config"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

const (
	pathLogin          = "/auth/login"
	pathSetTimetable   = "/timetable/set-timetable"
	pathSetAssignments = "/assignments/set-da"
)

// Client talks to the assignofast backend. Both write endpoints are
// idempotent full-replace PUTs authenticated by bearer token.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a backend client.
func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Login exchanges the Google access token for a backend session token.
func (c *Client) Login(ctx context.Context, uid, googleAccessToken string) (string, error) {
	query := url.Values{}
	query.Set("uid", uid)
	query.Set("googleAccessToken", googleAccessToken)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, pathLogin, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	var result dto.LoginResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", appErrors.Clone(appErrors.ErrUpstream, "login response missing token")
	}
	return result.Token, nil
}

// SetTimetable replaces the stored timetable for the account.
func (c *Client) SetTimetable(ctx context.Context, token string, payload dto.SetTimetableRequest) error {
	return c.put(ctx, pathSetTimetable, token, payload)
}

// SetAssignments replaces the stored assignment classes for the account.
func (c *Client) SetAssignments(ctx context.Context, token string, payload dto.SetAssignmentsRequest) error {
	return c.put(ctx, pathSetAssignments, token, payload)
}

func (c *Client) put(ctx context.Context, path, token string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "marshal sync payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build sync request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var discard json.RawMessage
	return c.do(req, &discard)
}

// do executes the request and decodes the JSON success body. A 403 maps to
// the session-expired error; any other non-2xx surfaces as upstream failure.
func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "backend request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read backend response")
	}

	if resp.StatusCode == http.StatusForbidden {
		c.logger.Warn("backend rejected authorization", zap.String("path", req.URL.Path))
		return appErrors.Clone(appErrors.ErrSessionExpired, "")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appErrors.Wrap(
			fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(raw)),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "backend write failed",
		)
	}

	if dest == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode backend response")
	}
	return nil
}
