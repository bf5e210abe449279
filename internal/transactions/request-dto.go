package transactions

// create transaction payload
type CreateTransactionRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
	Description string `json:"description" validate:"max=500"`
}
