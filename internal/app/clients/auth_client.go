package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

const (
	DefaultLoginPath  = "/api/auth/login"
	DefaultLogoutPath = "/api/auth/logout"
)

// LoginResponse is the backend's answer to a successful login
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AuthClient performs the session calls. It does not touch the credential
// store; persisting or clearing the token is the session service's job.
type AuthClient struct {
	base       *BaseClient
	loginPath  string
	logoutPath string
	logger     zerolog.Logger
}

// NewAuthClient creates an AuthClient. Empty paths fall back to the defaults.
func NewAuthClient(base *BaseClient, loginPath, logoutPath string) *AuthClient {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	if logoutPath == "" {
		logoutPath = DefaultLogoutPath
	}
	return &AuthClient{
		base:       base,
		loginPath:  loginPath,
		logoutPath: logoutPath,
		logger:     logger.ForResource("auth"),
	}
}

// Login exchanges credentials for a token
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	o := op{resource: "auth", operation: "login"}
	req := dto.LoginRequest{Email: email, Password: password}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPost, c.loginPath, req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapLogin)
}

// Logout asks the backend to end the current session. It is a single attempt;
// the caller decides what a failure means.
func (c *AuthClient) Logout(ctx context.Context) error {
	o := op{resource: "auth", operation: "logout"}
	_, err := c.base.doJSON(ctx, c.logger, o, http.MethodPost, c.logoutPath, nil)
	return err
}

func unwrapLogin(raw json.RawMessage) (*LoginResponse, error) {
	var resp LoginResponse
	if hasKey(raw, "data") {
		var env struct {
			Data LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		resp = env.Data
	} else if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("missing token")
	}
	return &resp, nil
}
