package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	// Authenticate resolves a session token to its account.
	Authenticate(ctx context.Context, rawToken string) (*Account, error)
	Get(ctx context.Context, id int64) (*Account, error)
	UpdatePreferences(ctx context.Context, accountID int64, req PreferencesRequest) (*Account, error)
	// EnsureAdmin creates the admin account when absent and promotes it otherwise.
	EnsureAdmin(ctx context.Context, username, password string) (*Account, error)
}

type RegisterRequest struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginRequest struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Account   *Account
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

// PreferencesRequest carries optional updates; nil fields are left unchanged.
type PreferencesRequest struct {
	DarkMode  *bool
	Anonymous *bool
}
