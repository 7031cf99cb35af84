package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

const usersPath = "/api/users"

// UserClient talks to the user endpoints. Accounts are created by
// registration and never deleted from the admin side.
type UserClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewUserClient creates a UserClient
func NewUserClient(base *BaseClient) *UserClient {
	return &UserClient{base: base, logger: logger.ForResource("users")}
}

// List returns users matching f
func (c *UserClient) List(ctx context.Context, f dto.UserFilters) ([]models.User, dto.PaginationInfo, error) {
	o := op{resource: "users", operation: "list"}
	q := listQuery(f.ListParams).
		String("role", string(f.Role)).
		Bool("isActive", f.IsActive).
		Bool("isVerified", f.IsVerified)

	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, helpers.WithQuery(usersPath, q), nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	page, err := decodeWith(c.logger, o, raw, unwrapUserPage)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return page.Users, page.Pagination, nil
}

// Get returns one user
func (c *UserClient) Get(ctx context.Context, id string) (*models.User, error) {
	o := op{resource: "users", operation: "get", id: id}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, usersPath+escapeID(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUser)
}

// Update sends only the fields set on req
func (c *UserClient) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	o := op{resource: "users", operation: "update", id: id}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPut, usersPath+escapeID(id), req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUser)
}

// Stats returns the user overview counters
func (c *UserClient) Stats(ctx context.Context) (*models.UserStats, error) {
	o := op{resource: "users", operation: "stats"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, usersPath+"/stats/overview", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUserStats)
}

// Profile returns the signed-in user
func (c *UserClient) Profile(ctx context.Context) (*models.User, error) {
	o := op{resource: "users", operation: "profile"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, usersPath+"/profile", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUser)
}

// UpdateProfile updates the signed-in user
func (c *UserClient) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*models.User, error) {
	o := op{resource: "users", operation: "update-profile"}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPut, usersPath+"/profile", req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUser)
}

// UserPage is the users list envelope
type UserPage struct {
	Users      []models.User      `json:"users"`
	Pagination dto.PaginationInfo `json:"pagination"`
}

func unwrapUserPage(raw json.RawMessage) (UserPage, error) {
	var page UserPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return page, err
	}
	if page.Users == nil {
		return page, fmt.Errorf("missing users array")
	}
	return page, nil
}

func unwrapUser(raw json.RawMessage) (*models.User, error) {
	if hasKey(raw, "user") {
		var env struct {
			User models.User `json:"user"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.User, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func unwrapUserStats(raw json.RawMessage) (*models.UserStats, error) {
	if hasKey(raw, "stats") {
		var env struct {
			Stats models.UserStats `json:"stats"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.Stats, nil
	}
	var stats models.UserStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
