package domain

// ProcessStage is one logged step of the collection procedure for an instrument.
type ProcessStage struct {
	ID             int64   `json:"id"`
	InstrumentID   int64   `json:"instrument_id"`
	Stage          string  `json:"stage"`
	StageDate      Date    `json:"stage_date"`
	Observations   *string `json:"observations"`
	Responsible    *string `json:"responsible"`
	NextActionDate *Date   `json:"next_action_date"`
}

type ProcessStageInput struct {
	InstrumentID   int64   `json:"instrument_id" validate:"required,gt=0"`
	Stage          string  `json:"stage" validate:"required,max=255"`
	StageDate      Date    `json:"stage_date"`
	Observations   *string `json:"observations"`
	Responsible    *string `json:"responsible"`
	NextActionDate *Date   `json:"next_action_date"`
}
