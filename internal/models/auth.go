package models

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required"`
	ReferredBy string `json:"referredBy"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
