package models

import "time"

// Session is the authenticated state of one logged in user. It is created at login,
// travels with each request context and is discarded at logout.
type Session struct {
	Token        string    `json:"token"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	ProfilePhoto string    `json:"profilePhoto"`
	IssuedAt     time.Time `json:"issuedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
