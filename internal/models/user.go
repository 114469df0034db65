package models

import "time"

// User is the identity record. PasswordHash and RefreshToken are never
// serialized; API responses carry the sanitized remainder.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"cover_image,omitempty"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"` // current valid refresh token; empty means logged out
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair is one access/refresh issuance. The refresh token's value is
// mirrored into User.RefreshToken so rotation can detect replay.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ChannelProfile is the public view of a user as a channel, with
// subscription counts relative to the requesting viewer.
type ChannelProfile struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Avatar       string `json:"avatar"`
	CoverImage   string `json:"cover_image,omitempty"`
	Subscribers  int64  `json:"subscribers"`
	SubscribedTo int64  `json:"subscribed_to"`
	IsSubscribed bool   `json:"is_subscribed"`
}
