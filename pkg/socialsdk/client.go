package socialsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Tether social service. It handles
// unauthenticated operations and creates Sessions via Login.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is an authenticated view of the service for one user.
type Session struct {
	client *SDKClient
	token  string

	// User is the profile returned at login.
	User User
}

// Token returns the raw bearer token, e.g. for wiring into other clients.
func (s *Session) Token() string { return s.token }

// Register creates an account. It does not log in; call Login afterwards.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", "", req)
	if err != nil {
		return User{}, err
	}
	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login authenticates and returns a Session.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	var lr LoginResponse
	if err := decodeJSON(resp, &lr, http.StatusOK); err != nil {
		return nil, err
	}
	return &Session{client: c, token: lr.AccessToken, User: lr.User}, nil
}

// SessionFromToken rebuilds a Session from a previously issued token.
func (c *SDKClient) SessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// InviteStatus looks up an invite's lifecycle by code. The code itself is
// the capability; no authentication is needed.
func (c *SDKClient) InviteStatus(ctx context.Context, code string) (InviteStatusResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/invites/"+code, "", nil)
	if err != nil {
		return InviteStatusResponse{}, err
	}
	var st InviteStatusResponse
	if err := decodeJSON(resp, &st, http.StatusOK); err != nil {
		return InviteStatusResponse{}, err
	}
	return st, nil
}

// Livez reports whether the service is up.
func (c *SDKClient) Livez(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Readyz reports whether the service can reach its database.
func (c *SDKClient) Readyz(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
