package models

import "time"

// User is a registered account. Created on signup, read on login, never
// updated or deleted here.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest is the POST /api/auth/signup body
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /api/auth/login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData is the payload returned by signup and login
type AuthData struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Token   string `json:"token,omitempty"`
}
