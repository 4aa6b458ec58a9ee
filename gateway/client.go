package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"moonhem/config"
	"moonhem/models"
	"moonhem/utils"
)

// API is the remote listing server, one method per endpoint. Views
// depend on this interface so tests can substitute a fake returning
// fixed records.
type API interface {
	SearchListings(ctx context.Context, f models.FilterState) ([]models.RawRecord, error)
	Users(ctx context.Context) ([]models.RawRecord, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	SendMessage(ctx context.Context, m models.Message) error
}

// APIError is a non-2xx response converted to a human-readable
// message. The message is the response body text when the server sent
// one, else an endpoint-specific fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client talks HTTP/JSON to the listing server.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *utils.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a Client against the configured base URL.
func NewClient(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger,
	}
}

// SearchListings calls GET /listings with the filter state encoded as
// query parameters. Empty values and the "all" type selector are left
// off the wire. The response may be a bare array or wrapped in a
// "listings" envelope.
func (c *Client) SearchListings(ctx context.Context, f models.FilterState) ([]models.RawRecord, error) {
	q := url.Values{}
	if s := strings.TrimSpace(f.Query); s != "" {
		q.Set("q", s)
	}
	if f.Type != "" && f.Type != models.TypeAll {
		q.Set("property_type", f.Type)
	}
	if n, ok := models.NumericBound(f.RoomsMin); ok {
		q.Set("rooms_min", formatNumber(n))
	}
	if n, ok := models.NumericBound(f.RoomsMax); ok {
		q.Set("rooms_max", formatNumber(n))
	}
	if n, ok := models.NumericBound(f.PriceMin); ok {
		q.Set("price_min", formatNumber(n))
	}
	if n, ok := models.NumericBound(f.PriceMax); ok {
		q.Set("price_max", formatNumber(n))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}

	body, err := c.get(ctx, "/listings?"+q.Encode(), "Request failed")
	if err != nil {
		return nil, err
	}
	return decodeRecords(body, "listings")
}

// Users calls GET /users. The response may be a bare array or wrapped
// in a "users" envelope.
func (c *Client) Users(ctx context.Context) ([]models.RawRecord, error) {
	body, err := c.get(ctx, "/users", "Request failed")
	if err != nil {
		return nil, err
	}
	return decodeRecords(body, "users")
}

// Login calls POST /login with HTTP Basic credentials and returns the
// authenticated user from the response's "user" field.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: build login request: %w", err)
	}
	req.SetBasicAuth(email, password)

	c.logger.Debug("[gateway] POST /login (%s)", email)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: login: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: bodyText(body, "Invalid credentials")}
	}

	var payload struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("gateway: decode login response: %w", err)
	}
	if payload.User == nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "Invalid credentials"}
	}
	return payload.User, nil
}

// SendMessage calls POST /messages. Numeric listing IDs go on the wire
// as JSON numbers; synthetic string IDs are sent as strings.
func (c *Client) SendMessage(ctx context.Context, m models.Message) error {
	payload := map[string]any{
		"sender_id":   m.SenderID,
		"receiver_id": m.ReceiverID,
		"listing_id":  wireID(m.ListingID),
		"content":     m.Content,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gateway: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gateway: build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("[gateway] POST /messages (listing %s)", m.ListingID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: send message: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: bodyText(body, "Failed to send message")}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, fallback string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}

	c.logger.Debug("[gateway] GET %s", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("API %d: %s", resp.StatusCode, bodyText(body, fallback)),
		}
	}
	return body, nil
}

// decodeRecords accepts either a bare JSON array or an object carrying
// the array under the given key. A wrapped object without the key
// decodes to an empty set, not an error.
func decodeRecords(body []byte, key string) ([]models.RawRecord, error) {
	var arr []models.RawRecord
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("gateway: unexpected response shape: %w", err)
	}
	raw, ok := envelope[key]
	if !ok {
		return []models.RawRecord{}, nil
	}
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("gateway: decode %s: %w", key, err)
	}
	return arr, nil
}

func bodyText(body []byte, fallback string) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return fallback
	}
	return s
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func wireID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
