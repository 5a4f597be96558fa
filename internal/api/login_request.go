package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"admin@admin.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}
