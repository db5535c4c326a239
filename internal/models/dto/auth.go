package dto

import "time"

type AuthenticateRequest struct {
	Password string `json:"password"`
}

// SessionResponse carries the bearer token identifying a caller's session.
type SessionResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Privileged bool      `json:"privileged"`
}
