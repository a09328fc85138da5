package account

import "carebridge/models"

// AccountService handles registration, login and token validation for the
// three account roles.
type AccountService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	Validate(id, role string) (*models.AuthResponse, error)
}
