package api

// swagger:model api.CreateCashFlowRequest
type CreateCashFlowRequest struct {
	Month          int    `json:"month" validate:"required,min=1,max=12" example:"3"`
	Year           int    `json:"year" validate:"required,min=1900,max=9999" example:"2024"`
	InitialBalance string `json:"initialBalance" validate:"omitempty,decimal" example:"1000.00"`
}

// swagger:model api.UpdateCashFlowRequest
type UpdateCashFlowRequest struct {
	InitialBalance Optional[string] `json:"initialBalance" swaggertype:"string" example:"1500.00"`
}

func (r *UpdateCashFlowRequest) validatePartial(v *Validator) error {
	return checkOptional(v, "initialBalance", r.InitialBalance, "decimal")
}
