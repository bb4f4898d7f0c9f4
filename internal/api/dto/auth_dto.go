package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse returned after successful registration.
type RegisterResponse struct {
	Message   string    `json:"message"`
	UserID    int64     `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginResponse returned after successful login.
type LoginResponse struct {
	Message   string    `json:"message"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	UserType  string    `json:"userType"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
