package api

// swagger:model api.CreateExpenseRequest
type CreateExpenseRequest struct {
	CashFlowID  int    `json:"cashFlowId" validate:"required,gt=0" example:"1"`
	Date        string `json:"date" validate:"required,isodate" example:"2024-03-10"`
	Description string `json:"description" validate:"required,max=255" example:"Rent"`
	Amount      string `json:"amount" validate:"omitempty,decimal" example:"200.00"`
	TagIDs      []int  `json:"tagIds" validate:"omitempty,dive,gt=0" example:"1"`
}

// swagger:model api.UpdateExpenseRequest
type UpdateExpenseRequest struct {
	Date        Optional[string] `json:"date" swaggertype:"string" example:"2024-03-11"`
	Description Optional[string] `json:"description" swaggertype:"string" example:"Rent"`
	Amount      Optional[string] `json:"amount" swaggertype:"string" example:"250.00"`
	TagIDs      Optional[[]int]  `json:"tagIds" swaggertype:"array,integer" example:"1"`
}

func (r *UpdateExpenseRequest) validatePartial(v *Validator) error {
	return firstError(
		checkOptional(v, "date", r.Date, "isodate"),
		checkOptional(v, "description", r.Description, "required,max=255"),
		checkOptional(v, "amount", r.Amount, "decimal"),
		checkTagIDs(v, r.TagIDs),
	)
}
