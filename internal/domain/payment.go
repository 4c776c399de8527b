package domain

// Payment is append-only: there is no update or delete path.
type Payment struct {
	ID           int64   `json:"id"`
	InstrumentID int64   `json:"instrument_id"`
	PaymentDate  Date    `json:"payment_date"`
	Amount       float64 `json:"amount"`
	Method       *string `json:"method"`
	Receipt      *string `json:"receipt"`
}

type PaymentInput struct {
	InstrumentID int64   `json:"instrument_id" validate:"required,gt=0"`
	PaymentDate  Date    `json:"payment_date"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Method       *string `json:"method"`
	Receipt      *string `json:"receipt"`
}
