package dto

// TransferRequest moves funds between two categories of the current budget
type TransferRequest struct {
	From   string `json:"from" validate:"required,max=100"`
	To     string `json:"to" validate:"required,max=100"`
	Amount string `json:"amount" validate:"required,money_amount,max_amount"`
}

// TransferResponse reports both sides after a transfer or funding
type TransferResponse struct {
	From CategoryResponse `json:"from"`
	To   CategoryResponse `json:"to"`
}
