package domain

import "testing"

func TestFold_StripsAccentsAndCase(t *testing.T) {
	if got := Fold("Comercio López Hnos."); got != "comercio lopez hnos." {
		t.Fatalf("unexpected fold: %q", got)
	}
}

func TestFold_KeepsPunctuationAndDigits(t *testing.T) {
	if got := Fold("ÑANDÚ-20/98765"); got != "nandu-20/98765" {
		t.Fatalf("unexpected fold: %q", got)
	}
}
