package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tunr-web/internal/logger"
	"tunr-web/internal/session"

	"golang.org/x/oauth2"
)

// tokenType is the scheme the Tunr API expects: "Authorization: Token <key>".
const tokenType = "Token"

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

var ErrNoToken = errors.New("backend: response carried no token")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status behind err, or 0 for transport failures.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// AuthResult is what login and signup hand back.
type AuthResult struct {
	Token   string       `json:"token"`
	User    session.User `json:"user"`
	Message string       `json:"message"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// MusicStatus is the music-provider connection as the backend reports it.
type MusicStatus struct {
	Connected   bool
	DisplayName string
}

// Client talks to the Tunr REST API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
	}
}

// authed returns an HTTP client that signs requests with the session token.
func (c *Client) authed(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   tokenType,
	}))
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the human message out of the backend's error bodies,
// which use "message", "error" or "detail" depending on the view.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	for _, m := range []string{body.Message, body.Error, body.Detail} {
		if m != "" {
			return m
		}
	}
	return ""
}

// Login exchanges credentials for a token. An identifier containing "@"
// is also sent as the email, which some backend builds key on.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	req := loginRequest{Username: username, Password: password}
	if strings.Contains(username, "@") {
		req.Email = username
	}

	var res AuthResult
	if err := c.do(ctx, c.http, http.MethodPost, "/api/auth/login/", req, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, ErrNoToken
	}
	if res.User.Username == "" {
		res.User.Username = username
	}
	return &res, nil
}

// Signup creates an account. The returned token may be empty; callers
// then log in with the same credentials.
func (c *Client) Signup(ctx context.Context, r SignupRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, c.http, http.MethodPost, "/api/auth/signup/", r, &res); err != nil {
		return nil, err
	}
	if res.User.Username == "" {
		res.User = session.User{Username: r.Username, Email: r.Email}
	}
	return &res, nil
}

// Logout invalidates the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, c.authed(ctx, token), http.MethodPost, "/api/auth/logout/", nil, nil)
}

// MusicStatus asks whether the user has a connected music account.
// 401 and 403 mean "not connected"; other failures are errors.
func (c *Client) MusicStatus(ctx context.Context, token string) (MusicStatus, error) {
	var profile struct {
		DisplayName string `json:"display_name"`
		ID          string `json:"id"`
	}

	err := c.do(ctx, c.authed(ctx, token), http.MethodGet, "/api/spotify/user/", nil, &profile)
	switch StatusOf(err) {
	case 0:
		if err != nil {
			return MusicStatus{}, err
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return MusicStatus{}, nil
	default:
		return MusicStatus{}, err
	}

	name := profile.DisplayName
	if name == "" {
		name = profile.ID
	}

	logger.Debug("music status fetched", map[string]any{"connected": true})

	return MusicStatus{Connected: true, DisplayName: name}, nil
}

// MusicLoginURL is where the browser goes to connect a music account; the
// backend ties the callback to the user through the state parameter.
func (c *Client) MusicLoginURL(token string) string {
	u := c.baseURL + "/spotify/login/"
	if token == "" {
		return u
	}
	return u + "?state=" + url.QueryEscape(token)
}
