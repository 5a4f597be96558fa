package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255" example:"Alice"`
	Email    string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`
	IsAdmin  bool   `json:"isAdmin" example:"false"`
}
