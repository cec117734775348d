// Package domain contains core types for accounts and their sessions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

type Type string

const (
	TypeUser  Type = "user"
	TypeAdmin Type = "admin"
)

// Account is a registered reviewer.
type Account struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string `gorm:"type:varchar(32);not null;uniqueIndex:ux_accounts_username" json:"username"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Status    Status `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	Type      Type   `gorm:"type:varchar(16);not null;default:'user'" json:"type"`
	Anonymous bool   `gorm:"not null;default:false" json:"anonymous"`
	DarkMode  bool   `gorm:"column:dark_mode;not null;default:false" json:"dark_mode"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }

func (a Account) IsActive() bool { return a.Status == StatusActive }

// Session is a persisted login. Only the SHA-256 of the token is stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	AccountID        int64        `gorm:"column:account_id;not null;index:ix_sessions_account"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:varchar(64);not null;uniqueIndex:ux_sessions_token_hash"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:varchar(64)"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index:ix_sessions_expires_at"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
