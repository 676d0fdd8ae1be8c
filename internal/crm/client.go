package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rithysak/backoffice/internal/auth"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/metrics"
)

// =============================================================================
// Client
// =============================================================================

// Client talks to the upstream CRM REST API. All persistence lives behind
// that API; this client is the application's only data-access layer.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *slog.Logger
	uploadMaxDim int
}

// Config holds configuration for the CRM client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger

	// UploadMaxDimension bounds the longer side of uploaded photos.
	// Zero disables downscaling.
	UploadMaxDimension int
}

// New creates a CRM API client.
func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:       cfg.Logger,
		uploadMaxDim: cfg.UploadMaxDimension,
	}
}

// =============================================================================
// Request Plumbing
// =============================================================================

// doRequest builds and executes one request against the CRM API.
//
// The bearer token is read from the context when present; its absence is
// tolerated and the request goes out without the Authorization header.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if token, ok := auth.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// sendJSON sends a JSON body and decodes a JSON response into out
// (skipped when out is nil). Non-2xx statuses become coded domain errors
// carrying the server-provided message when one is present.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, body any, out any) error {
	const op = "crm.request"

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Internal(err, op, "failed to encode request body")
	}

	resp, err := c.doRequest(ctx, method, endpoint, bytes.NewReader(payload), "application/json")
	if err != nil {
		return domain.Unavailable(err, op, "CRM API is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(endpoint, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Unavailable(err, op, "failed to decode CRM response")
	}
	return nil
}

// serverMessage is the error body shape the CRM uses for rejections.
type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusError maps a non-2xx upstream response to a domain error,
// preferring the server's own message so the UI can show it verbatim.
func (c *Client) statusError(endpoint string, resp *http.Response) error {
	const op = "crm.request"

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var sm serverMessage
	_ = json.Unmarshal(bodyBytes, &sm)
	msg := sm.Message
	if msg == "" {
		msg = sm.Error
	}

	c.logger.Warn("CRM API returned error status",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"message", msg,
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if msg == "" {
			msg = "Your session has expired. Please sign in again."
		}
		return domain.Unauthorized(op, msg)
	case resp.StatusCode == http.StatusNotFound:
		if msg == "" {
			msg = "The requested record was not found."
		}
		return domain.Errorf(domain.ENOTFOUND, op, "%s", msg)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		if msg == "" {
			msg = "The CRM rejected the request."
		}
		return domain.Invalid(op, msg)
	default:
		return domain.Unavailable(
			fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes)),
			op, "The CRM API failed. Please try again.")
	}
}

// =============================================================================
// Pagination
// =============================================================================

// paginationRequest is the wire form of a page fetch. The CRM expects
// every field as a string, including the numbers.
type paginationRequest struct {
	PageNumber  string `json:"page_number"`
	PageSize    string `json:"page_size"`
	SearchType  string `json:"search_type"`
	QuerySearch string `json:"query_search"`
}

func newPaginationRequest(req domain.PageRequest) paginationRequest {
	return paginationRequest{
		PageNumber:  strconv.Itoa(req.PageNumber),
		PageSize:    strconv.Itoa(req.PageSize),
		SearchType:  req.SearchType,
		QuerySearch: req.Query,
	}
}

// Search posts a page request to one of the pagination endpoints and
// returns the normalized raw rows plus the backend total. A response
// matching no known envelope shape yields an empty page, not an error.
func (c *Client) Search(ctx context.Context, endpoint string, req domain.PageRequest) ([]json.RawMessage, int, error) {
	const op = "crm.search"

	payload, err := json.Marshal(newPaginationRequest(req))
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to encode page request")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, 0, domain.Unavailable(err, op, "CRM API is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, c.statusError(endpoint, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, domain.Unavailable(err, op, "failed to read CRM response")
	}

	rows, total := NormalizeEnvelope(body)
	if rows == nil && len(bytes.TrimSpace(body)) > 0 {
		metrics.UpstreamEnvelopeMismatches.WithLabelValues(endpoint).Inc()
	}
	return rows, total, nil
}

// decodeRows unmarshals each raw row into T, logging and skipping rows
// that do not decode instead of failing the page.
func decodeRows[T any](logger *slog.Logger, endpoint string, raws []json.RawMessage) []T {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("skipping undecodable row", "endpoint", endpoint, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// =============================================================================
// Reference Lists
// =============================================================================

// RefItem is one entry of a reference list (dropdown source).
type RefItem struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

// Reference fetches a full reference list (provinces, property types,
// lead sources, ...). These endpoints return either a bare array or the
// object-with-data envelope.
func (c *Client) Reference(ctx context.Context, endpoint string) ([]RefItem, error) {
	const op = "crm.reference"

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, domain.Unavailable(err, op, "CRM API is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(endpoint, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Unavailable(err, op, "failed to read CRM response")
	}

	trimmed := bytes.TrimSpace(body)
	var items []RefItem
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return items, nil
		}
	}
	raws, _ := NormalizeEnvelope(trimmed)
	for _, item := range decodeRows[RefItem](c.logger, endpoint, raws) {
		items = append(items, item)
	}
	return items, nil
}

// =============================================================================
// Authentication
// =============================================================================

// Session is the result of a successful sign-in against the CRM.
type Session struct {
	Token string
	User  domain.User
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string `json:"token"`
	User  struct {
		UserID    flexID `json:"user_id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"user"`
}

// SignIn exchanges operator credentials for a bearer token. Token
// issuance itself belongs to the CRM; this client only forwards.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	const op = "auth.signin"

	var out signInResponse
	if err := c.sendJSON(ctx, http.MethodPost, "auth/login", signInRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, domain.Unauthorized(op, "Invalid email or password.")
	}

	return &Session{
		Token: out.Token,
		User: domain.User{
			ID:       out.User.UserID.String(),
			FullName: domain.FullName(out.User.FirstName, out.User.LastName),
			Email:    out.User.Email,
		},
	}, nil
}
