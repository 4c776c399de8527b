package domain

import "math"

const daysPerYear = 365

// AccruedInterest returns simple interest on principal at annualRate percent
// for the whole days between due and today, rounded to cents. It is zero when
// due is not strictly before today.
func AccruedInterest(principal, annualRate float64, due, today Date) float64 {
	days := DaysOverdue(due, today)
	if days <= 0 {
		return 0
	}
	raw := principal * (annualRate / 100) * (float64(days) / daysPerYear)
	return RoundCents(raw)
}

func DaysOverdue(due, today Date) int {
	if !due.Before(today) {
		return 0
	}
	return today.DaysSince(due)
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
