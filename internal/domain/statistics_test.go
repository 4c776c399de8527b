package domain

import "testing"

func TestRecoveryPercentage(t *testing.T) {
	cases := []struct {
		name               string
		pending, recovered float64
		want               float64
	}{
		{"empty portfolio", 0, 0, 0},
		{"nothing recovered", 3000, 0, 0},
		{"quarter recovered", 3000, 1000, 25},
		{"everything recovered", 0, 500, 100},
		{"rounds to two decimals", 2000, 1000, 33.33},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RecoveryPercentage(tc.pending, tc.recovered)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got < 0 || got > 100 {
				t.Fatalf("percentage out of range: %v", got)
			}
		})
	}
}

func TestAggregates_Statistics(t *testing.T) {
	a := Aggregates{TotalDebtors: 2, TotalInstruments: 2, PendingDebt: 3000, TotalRecovered: 1000, OverdueCount: 1}
	s := a.Statistics()

	if s.RecoveryPercentage != 25 {
		t.Fatalf("expected 25, got %v", s.RecoveryPercentage)
	}
	if s.TotalDebtors != 2 || s.OverdueCount != 1 {
		t.Fatalf("counters not copied: %+v", s)
	}
}
