package domain

// Aggregates are the raw counters read from the store in one statistics pass.
type Aggregates struct {
	TotalDebtors     int64
	TotalInstruments int64
	PendingDebt      float64
	TotalRecovered   float64
	UpcomingDue      int64
	OverdueCount     int64
}

type Statistics struct {
	TotalDebtors       int64   `json:"total_debtors"`
	TotalInstruments   int64   `json:"total_instruments"`
	PendingDebt        float64 `json:"pending_debt"`
	TotalRecovered     float64 `json:"total_recovered"`
	RecoveryPercentage float64 `json:"recovery_percentage"`
	UpcomingDue        int64   `json:"upcoming_due"`
	OverdueCount       int64   `json:"overdue_count"`
}

// RecoveryPercentage is recovered / (pending + recovered) * 100 rounded to two
// decimals, or 0 when nothing is owed or recovered.
func RecoveryPercentage(pending, recovered float64) float64 {
	total := pending + recovered
	if total <= 0 {
		return 0
	}
	pct := RoundCents(recovered / total * 100)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func (a Aggregates) Statistics() Statistics {
	return Statistics{
		TotalDebtors:       a.TotalDebtors,
		TotalInstruments:   a.TotalInstruments,
		PendingDebt:        RoundCents(a.PendingDebt),
		TotalRecovered:     RoundCents(a.TotalRecovered),
		RecoveryPercentage: RecoveryPercentage(a.PendingDebt, a.TotalRecovered),
		UpcomingDue:        a.UpcomingDue,
		OverdueCount:       a.OverdueCount,
	}
}
