package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,nowhitespace,min=3,max=64"`
	Password string `json:"password" validate:"required,notblank,min=6,max=72"`
	Role     string `json:"role"     validate:"required,oneof=Admin Member"`
}

type registerResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}

// --- Assets ---

type assetRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=200"`
	Type     string `json:"type"     validate:"required,notblank,max=200"`
	Location string `json:"location" validate:"required,notblank,max=200"`
}

type assetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
