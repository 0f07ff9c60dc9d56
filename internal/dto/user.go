package dto

// CreateUserRequest is the add-user form.
type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,notblank,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,user_role"`
	Status string `json:"status" validate:"omitempty,user_status"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

// UpdateUserRequest changes selected fields of a user.
type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,notblank,max=120"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Role   *string `json:"role" validate:"omitempty,user_role"`
	Status *string `json:"status" validate:"omitempty,user_status"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}
