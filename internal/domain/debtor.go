package domain

type Debtor struct {
	ID        int64   `json:"id"`
	TaxID     string  `json:"tax_id"`
	Name      string  `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	CreatedOn Date    `json:"created_on"`
	Active    bool    `json:"active"`
}

// DebtorInput carries the writable fields of a debtor for create and update.
type DebtorInput struct {
	TaxID   string  `json:"tax_id" validate:"required,max=32"`
	Name    string  `json:"name" validate:"required,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" validate:"omitempty,max=64"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Active  *bool   `json:"active"`
}
