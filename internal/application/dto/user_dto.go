package dto

import "time"

// LoginRequest credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse issued token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest admin-only user registration.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
	Role     string `json:"role" validate:"required"`
}

// UpdateUserRequest partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=8"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
}

// UserResponse user output. The password hash never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	UseYN     string    `json:"use_yn"`
	CreatedAt time.Time `json:"created_at"`
}
