package dto

import "github.com/ScholarStream/scholarship_service/internal/domain"

// RegisterRequest supports either federated registration (IDToken set) or
// direct email+password registration.
type RegisterRequest struct {
	IDToken  string `json:"idToken,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	PhotoURL string `json:"photoURL,omitempty"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=Student Moderator Admin"`

	// AdminToken authorizes assigning the Admin role once an Admin exists.
	AdminToken string `json:"adminToken,omitempty"`
}

type LoginRequest struct {
	IDToken  string `json:"idToken,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty"`
}

type UserResponse struct {
	ID       string      `json:"_id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	PhotoURL string      `json:"photoURL"`
	Role     domain.Role `json:"role"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID.Hex(),
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
	}
}
