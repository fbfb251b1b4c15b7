package dto

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Student Moderator Admin"`
}

// UpdateProfileRequest is the allow-listed profile patch. Anything else in
// the body is ignored.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
}
