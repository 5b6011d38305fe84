package models

import (
	"fmt"
	"testing"
)

func TestCounterSeedsFitIDColumns(t *testing.T) {
	// Every entity ID column is varchar(32); even a counter well past its
	// seed must produce an id that fits.
	for prefix, seed := range counterSeeds {
		id := fmt.Sprintf("%s-%d", prefix, seed+1000000)
		if len(id) > 32 {
			t.Fatalf("id %s for prefix %s exceeds 32 characters", id, prefix)
		}
	}
}

func TestCounterSeedsCoverAllPrefixes(t *testing.T) {
	for _, prefix := range []string{
		IDPrefixUser, IDPrefixInvestment, IDPrefixWithdrawal,
		IDPrefixActivity, IDPrefixBankAccount,
	} {
		if _, ok := counterSeeds[prefix]; !ok {
			t.Fatalf("prefix %s has no seed", prefix)
		}
	}
}
