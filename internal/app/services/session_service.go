package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/clients"
	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
	"github.com/amrelfalogy/smarted/internal/pkg/auth"
	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
)

const (
	DefaultRedirectDelay = 1500 * time.Millisecond
	DefaultLoginPath     = "/login"

	logoutSuccessMessage = "Logged out successfully"
)

// LogoutState is the lifecycle of one logout
type LogoutState int

const (
	StateIdle LogoutState = iota
	StateLoggingOut
	StateSuccess
	// StateForcedSuccess means the backend call failed but the local
	// session was torn down anyway.
	StateForcedSuccess
)

func (s LogoutState) String() string {
	switch s {
	case StateLoggingOut:
		return "logging_out"
	case StateSuccess:
		return "success"
	case StateForcedSuccess:
		return "forced_success"
	}
	return "idle"
}

// SessionAPI is the backend side of a session
type SessionAPI interface {
	Login(ctx context.Context, email, password string) (*clients.LoginResponse, error)
	Logout(ctx context.Context) error
}

// Navigator moves the operator to another screen or route
type Navigator interface {
	Navigate(path string)
}

// Notifier shows transient messages to the operator
type Notifier interface {
	Success(message string)
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration)

// SessionConfig holds the session timings and routes
type SessionConfig struct {
	RedirectDelay time.Duration
	LoginPath     string
}

// LogoutResult describes how a logout ended. Cause holds the swallowed
// backend error of a forced logout.
type LogoutResult struct {
	State LogoutState
	Cause error
}

// Session is what the stored token says about the signed-in user
type Session struct {
	UserID    string
	Email     string
	Role      enums.Role
	ExpiresAt time.Time
	Expired   bool
}

// SessionService owns login and logout. Logout always ends with the local
// token removed and a delayed redirect to the login route, whatever the
// backend answered.
type SessionService struct {
	api      SessionAPI
	tokens   credstore.Store
	nav      Navigator
	notifier Notifier
	config   SessionConfig
	sleep    Sleeper
	now      func() time.Time
	logger   zerolog.Logger

	mu    sync.Mutex
	state LogoutState
}

// NewSessionService creates a new SessionService
func NewSessionService(
	api SessionAPI,
	tokens credstore.Store,
	nav Navigator,
	notifier Notifier,
	config SessionConfig,
	logger zerolog.Logger,
) *SessionService {
	if config.RedirectDelay <= 0 {
		config.RedirectDelay = DefaultRedirectDelay
	}
	if config.LoginPath == "" {
		config.LoginPath = DefaultLoginPath
	}
	return &SessionService{
		api:      api,
		tokens:   tokens,
		nav:      nav,
		notifier: notifier,
		config:   config,
		sleep:    sleepContext,
		now:      time.Now,
		logger:   logger,
	}
}

// WithSleeper replaces the redirect delay timer
func (s *SessionService) WithSleeper(sleep Sleeper) *SessionService {
	s.sleep = sleep
	return s
}

// WithClock replaces the clock used for expiry checks
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// State returns the current logout state
func (s *SessionService) State() LogoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Login exchanges credentials for a token and stores it
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(credstore.AuthTokenKey, resp.Token); err != nil {
		s.logger.Error().Err(err).Msg("Failed to store auth token")
		return nil, err
	}

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	s.logger.Info().Str("userId", resp.User.ID).Str("role", string(resp.User.Role)).Msg("Logged in")
	return &resp.User, nil
}

// Logout calls the backend once. A backend failure is logged and masked: the
// result is StateForcedSuccess and no error is returned. Only a logout already
// in flight is reported, as apperrors.ErrLogoutInProgress.
func (s *SessionService) Logout(ctx context.Context) (LogoutResult, error) {
	s.mu.Lock()
	if s.state == StateLoggingOut {
		s.mu.Unlock()
		return LogoutResult{State: StateLoggingOut}, apperrors.ErrLogoutInProgress
	}
	s.state = StateLoggingOut
	s.mu.Unlock()

	result := LogoutResult{State: StateSuccess}
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Backend logout failed, clearing local session anyway")
		result = LogoutResult{State: StateForcedSuccess, Cause: err}
	}

	if err := s.tokens.Remove(credstore.AuthTokenKey); err != nil {
		s.logger.Error().Err(err).Msg("Failed to remove auth token")
	}
	if result.State == StateSuccess && s.notifier != nil {
		s.notifier.Success(logoutSuccessMessage)
	}

	s.mu.Lock()
	s.state = result.State
	s.mu.Unlock()

	s.sleep(ctx, s.config.RedirectDelay)
	if s.nav != nil {
		s.nav.Navigate(s.config.LoginPath)
	}

	s.logger.Info().Str("state", result.State.String()).Msg("Logged out")
	return result, nil
}

// CurrentSession decodes the stored token. It returns
// apperrors.ErrTokenNotFound when nobody is signed in.
func (s *SessionService) CurrentSession() (*Session, error) {
	token := credstore.Token(s.tokens)
	if token == "" {
		return nil, apperrors.ErrTokenNotFound
	}

	claims, err := auth.Inspect(token)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, err.Error())
	}

	return &Session{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      enums.Role(claims.Role),
		ExpiresAt: claims.ExpiresAtTime(),
		Expired:   claims.Expired(s.now()),
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
