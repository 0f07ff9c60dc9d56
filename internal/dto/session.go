package dto

// CreateSessionRequest optionally overrides the signed-in profile.
type CreateSessionRequest struct {
	Name  string `json:"name" validate:"max=120"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"max=60"`
}
