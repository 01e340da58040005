package domain

// Quotation is the input of the quotation PDF.
type Quotation struct {
	CustomerName string   `json:"customer_name" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Processes    []string `json:"processes" validate:"required,min=1,dive,required"`
	Products     []string `json:"products" validate:"required,min=1,dive,required"`
	TotalArea    string   `json:"total_area" validate:"required"`
	TotalAmount  *Amount  `json:"total_amount" validate:"required"`
}
