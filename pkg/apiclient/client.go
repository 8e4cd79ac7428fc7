package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"linguachat/pkg/domain"
)

// APIError is a non-2xx response from the chat API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the chat API on behalf of an end user. It keeps the
// session token from the last Register or Login call and attaches it as a
// bearer token on authenticated requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New constructs a client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Token returns the current session token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

// SetToken restores a previously issued session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/register", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

type verifyResponse struct {
	Valid bool        `json:"valid"`
	User  domain.User `json:"user"`
}

// VerifyToken checks the stored token and returns the resolved user.
func (c *Client) VerifyToken(ctx context.Context) (domain.User, error) {
	var resp verifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/verify", nil, &resp); err != nil {
		return domain.User{}, err
	}
	if !resp.Valid {
		return domain.User{}, &APIError{Status: http.StatusUnauthorized, Message: "invalid token"}
	}
	return resp.User, nil
}

type chatRequest struct {
	Message string `json:"message"`
	Topic   string `json:"topic"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// SendMessage forwards a chat message for the given topic and returns the
// model's reply.
func (c *Client) SendMessage(ctx context.Context, message, topic string) (string, error) {
	var resp chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", chatRequest{Message: message, Topic: topic}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

type historyResponse struct {
	Items []domain.ChatTurn `json:"items"`
	Count int               `json:"count"`
}

// History fetches the persisted transcript, newest turns last. A limit of 0
// uses the server default.
func (c *Client) History(ctx context.Context, limit int) ([]domain.ChatTurn, error) {
	path := "/api/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Logout revokes the stored session token and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
