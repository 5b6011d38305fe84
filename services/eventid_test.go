package services

import (
	"testing"
	"time"
)

func TestDeterministicIDs(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{PrincipalID("INV-10001"), "TXN-INV-10001-PRINCIPAL"},
		{DistributionID("INV-10001", 2024, time.March), "TXN-INV-10001-DIST-2024-03"},
		{ContributionID("INV-10001", 2024, time.March), "TXN-INV-10001-CONTRIB-2024-03"},
		{RedemptionID("INV-10001", "WD-10001"), "TXN-INV-10001-RED-WD-10001"},
		{ActivityID("TXN-INV-10001-DIST-2024-03"), "ACT-INV-10001-DIST-2024-03"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("expected %s, got %s", c.want, c.got)
		}
	}
}

func TestIDStability(t *testing.T) {
	a := DistributionID("INV-10042", 2025, time.November)
	b := DistributionID("INV-10042", 2025, time.November)
	if a != b {
		t.Fatalf("id not stable: %s vs %s", a, b)
	}
}

func TestMonthKeyZeroPadded(t *testing.T) {
	if k := MonthKey(2024, time.January); k != "2024-01" {
		t.Fatalf("expected 2024-01, got %s", k)
	}
	if k := MonthKey(2024, time.December); k != "2024-12" {
		t.Fatalf("expected 2024-12, got %s", k)
	}
}
