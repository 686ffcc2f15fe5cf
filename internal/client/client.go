// Package client talks to the equipment tracker REST API.
//
// Reads degrade: a failed List or ListRentalEntries logs a warning and
// returns an empty slice. Writes return the error to the caller. Nothing
// is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"equipment-tracker/internal/config"
	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"
)

const serviceName = "equipment-api"

// APIError is a non-2xx reply. Message is the server's {"error": ...} text when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("equipment api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("equipment api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func NewFromConfig(cfg config.ClientConfig) *Client {
	return New(cfg.BaseURL, &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second})
}

// List returns every equipment record, or an empty slice if the call fails.
func (c *Client) List(ctx context.Context) []domain.Equipment {
	items := []domain.Equipment{}
	if err := c.do(ctx, "list", http.MethodGet, "/equipment", nil, &items); err != nil {
		return []domain.Equipment{}
	}
	return items
}

// Create stores e as a new record. e.ID is ignored.
func (c *Client) Create(ctx context.Context, e domain.Equipment) (*domain.Equipment, error) {
	e.ID = 0
	var created domain.Equipment
	if err := c.do(ctx, "create", http.MethodPost, "/equipment", e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Update(ctx context.Context, e domain.Equipment) (*domain.Equipment, error) {
	if e.ID <= 0 {
		return nil, domain.ErrMissingID
	}
	var updated domain.Equipment
	if err := c.do(ctx, "update", http.MethodPut, "/equipment", e, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrMissingID
	}
	path := "/equipment?" + url.Values{"id": {strconv.FormatInt(id, 10)}}.Encode()
	return c.do(ctx, "delete", http.MethodDelete, path, nil, nil)
}

// ListRentalEntries returns the rental history, or an empty slice if the call fails.
func (c *Client) ListRentalEntries(ctx context.Context) []domain.RentalEntry {
	entries := []domain.RentalEntry{}
	if err := c.do(ctx, "list_rentals", http.MethodGet, "/rentals", nil, &entries); err != nil {
		return []domain.RentalEntry{}
	}
	return entries
}

// Actions returns the actions allowed for the record's current status.
func (c *Client) Actions(ctx context.Context, id int64) ([]domain.Action, error) {
	if id <= 0 {
		return nil, domain.ErrMissingID
	}
	var resp struct {
		Actions []domain.Action `json:"actions"`
	}
	if err := c.do(ctx, "actions", http.MethodGet, fmt.Sprintf("/equipment/%d/actions", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Actions, nil
}

func (c *Client) ApplyAction(ctx context.Context, id int64, action domain.Action, payload domain.ActionPayload) (*domain.Equipment, error) {
	if id <= 0 {
		return nil, domain.ErrMissingID
	}
	body := struct {
		Action domain.Action `json:"action"`
		domain.ActionPayload
	}{action, payload}

	var updated domain.Equipment
	if err := c.do(ctx, "apply_action", http.MethodPost, fmt.Sprintf("/equipment/%d/actions", id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// do performs one round trip. in is encoded as the JSON body when non-nil;
// out receives the decoded 2xx body when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	logger.ExternalServiceCall(serviceName, op, "method", method, "path", path)
	start := time.Now()
	defer func() {
		logger.ExternalServiceResult(serviceName, op, err, "duration_ms", time.Since(start).Milliseconds())
	}()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var env struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&env); err == nil {
		apiErr.Message = env.Error
	}
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
