package domain

type InstrumentStatus string

const (
	StatusPending   InstrumentStatus = "PENDING"
	StatusInProcess InstrumentStatus = "IN_PROCESS"
	StatusPaid      InstrumentStatus = "PAID"
)

var instrumentStatuses = map[InstrumentStatus]struct{}{
	StatusPending:   {},
	StatusInProcess: {},
	StatusPaid:      {},
}

func (s InstrumentStatus) Valid() bool {
	_, ok := instrumentStatuses[s]
	return ok
}

type Instrument struct {
	ID              int64            `json:"id"`
	DebtorID        int64            `json:"debtor_id"`
	Type            string           `json:"type"`
	Number          string           `json:"number"`
	Amount          float64          `json:"amount"`
	IssueDate       Date             `json:"issue_date"`
	DueDate         Date             `json:"due_date"`
	InterestRate    float64          `json:"interest_rate"`
	AccruedInterest float64          `json:"accrued_interest"`
	Status          InstrumentStatus `json:"status"`

	// read-side join with debtors, never persisted on the instrument row
	DebtorName  *string `json:"debtor_name"`
	DebtorTaxID *string `json:"debtor_tax_id"`
}

type InstrumentInput struct {
	DebtorID     int64            `json:"debtor_id" validate:"required,gt=0"`
	Type         string           `json:"type" validate:"required"`
	Number       string           `json:"number" validate:"required,max=64"`
	Amount       float64          `json:"amount" validate:"required,gt=0"`
	IssueDate    Date             `json:"issue_date"`
	DueDate      Date             `json:"due_date"`
	InterestRate *float64         `json:"interest_rate" validate:"omitempty,gte=0"`
	Status       InstrumentStatus `json:"status"`
}
