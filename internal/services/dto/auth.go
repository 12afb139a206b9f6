package dto

import "gigflow_backend/internal/models"

// --- Auth Requests ---

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Auth Responses ---

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
