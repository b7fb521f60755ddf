package dto

import "time"

// RegisterRequest describes the customer sign-up payload.
type RegisterRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginRequest describes phone/password payload.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// TokenResponse carries a freshly issued auth token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is a user record without credentials.
type UserResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
