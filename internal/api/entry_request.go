package api

// swagger:model api.CreateEntryRequest
type CreateEntryRequest struct {
	CashFlowID     int    `json:"cashFlowId" validate:"required,gt=0" example:"1"`
	Date           string `json:"date" validate:"required,isodate" example:"2024-03-05"`
	Description    string `json:"description" validate:"required,max=255" example:"Salary"`
	AmountExpected string `json:"amountExpected" validate:"omitempty,decimal" example:"1000.00"`
	AmountReceived string `json:"amountReceived" validate:"omitempty,decimal" example:"500.00"`
	TagIDs         []int  `json:"tagIds" validate:"omitempty,dive,gt=0" example:"1,2"`
}

// swagger:model api.UpdateEntryRequest
type UpdateEntryRequest struct {
	Date           Optional[string] `json:"date" swaggertype:"string" example:"2024-03-06"`
	Description    Optional[string] `json:"description" swaggertype:"string" example:"Salary"`
	AmountExpected Optional[string] `json:"amountExpected" swaggertype:"string" example:"1000.00"`
	AmountReceived Optional[string] `json:"amountReceived" swaggertype:"string" example:"1000.00"`
	TagIDs         Optional[[]int]  `json:"tagIds" swaggertype:"array,integer" example:"1,2"`
}

func (r *UpdateEntryRequest) validatePartial(v *Validator) error {
	return firstError(
		checkOptional(v, "date", r.Date, "isodate"),
		checkOptional(v, "description", r.Description, "required,max=255"),
		checkOptional(v, "amountExpected", r.AmountExpected, "decimal"),
		checkOptional(v, "amountReceived", r.AmountReceived, "decimal"),
		checkTagIDs(v, r.TagIDs),
	)
}
