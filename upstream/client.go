package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vinworld/models"
)

// Client talks to the PHP docket API over plain REST/JSON.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client with a hard request timeout. Calls also honor
// the caller's context, so an abandoned request is cancelled rather than
// left to update state for a view nobody is looking at anymore.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// envelope is the common response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count,omitempty"`
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	body, _ := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   password,
	})

	env, err := c.postJSON(ctx, "/auth/login.php", body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: envMessage(env, "Login failed. Please try again.")}
	}

	var user models.UserProfile
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("decode login profile: %w", err)
	}
	return &LoginResult{User: user, Token: env.Token}, nil
}

func (c *Client) GetDockets(ctx context.Context, locationID int64, search string) ([]models.Docket, error) {
	q := url.Values{}
	q.Set("locationId", fmt.Sprintf("%d", locationID))
	if search != "" {
		q.Set("search", search)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/docket/get_docket.php?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: envMessage(env, "Failed to load dockets")}
	}

	var dockets []models.Docket
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &dockets); err != nil {
			return nil, fmt.Errorf("decode dockets: %w", err)
		}
	}
	return dockets, nil
}

func (c *Client) CreateDocket(ctx context.Context, payload *models.CreatePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	env, err := c.postJSON(ctx, "/docket/add_docket.php", body)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: envMessage(env, "Failed to create docket")}
	}
	return nil
}

// UpdateDocket posts multipart form data: a "data" field with the JSON
// payload plus an optional "image" file field.
func (c *Client) UpdateDocket(ctx context.Context, payload *models.UpdatePayload, image *ImageUpload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("data", string(data)); err != nil {
		return err
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", image.Filename)
		if err != nil {
			return err
		}
		if _, err := part.Write(image.Data); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/docket/update_docket.php", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.do(req)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Message: envMessage(env, "Failed to update docket")}
	}
	return nil
}

func (c *Client) GetConsignors(ctx context.Context) ([]models.Consignor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/docket/get_consignor.php", nil)
	if err != nil {
		return nil, err
	}

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: envMessage(env, "Failed to load consignors")}
	}

	var all []models.Consignor
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &all); err != nil {
			return nil, fmt.Errorf("decode consignors: %w", err)
		}
	}

	// Only active rows are ever offered for selection.
	active := all[:0]
	for _, cons := range all {
		if cons.Active() {
			active = append(active, cons)
		}
	}
	return active, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream %s: status %d", req.URL.Path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return &env, nil
}

func envMessage(env *envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	return fallback
}
