package domain

import "errors"

var (
	ErrNotFound           = errors.New("account_not_found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInactive           = errors.New("account_inactive")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrSessionNotFound    = errors.New("session_not_found")
	ErrSessionExpired     = errors.New("session_expired")
	ErrSessionRevoked     = errors.New("session_revoked")
	ErrInvalidSession     = errors.New("invalid_session")
)
