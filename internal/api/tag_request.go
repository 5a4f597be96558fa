package api

// swagger:model api.CreateTagRequest
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=100" example:"Groceries"`
	Color string `json:"color" validate:"omitempty,hexcolor,len=7" example:"#6366f1"`
}
