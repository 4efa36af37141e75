package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a user in the authentication system. Session tokens and the
// outstanding password reset token live on the user document itself, so every
// session mutation is a single-document update.
type User struct {
	ID                      bson.ObjectID  `bson:"_id,omitempty"       json:"-"`
	Name                    string         `bson:"name"                json:"name"`
	Email                   string         `bson:"email"               json:"email"`
	PasswordHash            string         `bson:"password_hash"       json:"-"`
	Tokens                  []SessionToken `bson:"tokens"              json:"-"`
	ResetPassToken          string         `bson:"reset_pass_token,omitempty"            json:"-"`
	ResetPassTokenExpiresAt *time.Time     `bson:"reset_pass_token_expires_at,omitempty" json:"-"`
	CreatedAt               time.Time      `bson:"created_at"          json:"created_at"`
	UpdatedAt               time.Time      `bson:"updated_at"          json:"updated_at"`
}

// SessionToken is one entry of a user's session list. A session is pending
// while ExpiresAt is set and in the future, and explicitly expired once
// IsExpired is set; the two fields are mutually exclusive after logout because
// expiring a session unsets ExpiresAt.
type SessionToken struct {
	ID        string     `bson:"_id,omitempty"        json:"-"`
	Token     string     `bson:"token"                json:"token"`
	CreatedAt time.Time  `bson:"created_at"           json:"createdAt"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	IsExpired bool       `bson:"is_expired,omitempty" json:"isExpired,omitempty"`
	ExpiredAt *time.Time `bson:"expired_at,omitempty" json:"expiredAt,omitempty"`
	Browser   string     `bson:"browser,omitempty"    json:"browser,omitempty"`
	OS        string     `bson:"os,omitempty"         json:"os,omitempty"`
}

// DefaultExpired reports whether the session's default TTL has lapsed without
// the session having been explicitly logged out.
func (t SessionToken) DefaultExpired(now time.Time) bool {
	return !t.IsExpired && t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
