package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
)

func monthlyInvestment() models.Investment {
	confirmed := time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)
	return models.Investment{
		ID:               "INV-10001",
		UserID:           "USR-1001",
		Amount:           10000,
		PaymentFrequency: models.FrequencyMonthly,
		LockupPeriod:     models.LockupOneYear,
		Status:           models.StatusActive,
		ConfirmedAt:      &confirmed,
	}
}

func TestEventCandidates_MonthlyProration(t *testing.T) {
	inv := monthlyInvestment()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	cands := EventCandidates(inv, now, false)
	if len(cands) != 3 {
		t.Fatalf("expected principal + 2 distributions, got %d candidates", len(cands))
	}

	if cands[0].Type != models.TxnTypeInvestment || cands[0].Status != models.TxnStatusReceived {
		t.Fatalf("unexpected principal candidate: %+v", cands[0])
	}

	// Confirmed April 15: accrual runs April 16-30, 15 of 30 days.
	first := cands[1]
	if first.ID != "TXN-INV-10001-DIST-2024-04" {
		t.Fatalf("unexpected first distribution id %s", first.ID)
	}
	if first.Amount != 33.33 {
		t.Fatalf("expected prorated 33.33, got %v", first.Amount)
	}
	if !first.Date.Equal(DistributionTimestamp(2024, time.May, 1)) {
		t.Fatalf("expected May 1 9AM Eastern stamp, got %s", first.Date)
	}
	if first.Status != models.TxnStatusPending {
		t.Fatalf("expected pending, got %s", first.Status)
	}

	second := cands[2]
	if second.Amount != 66.67 {
		t.Fatalf("expected full-month 66.67, got %v", second.Amount)
	}
	if !second.Date.Equal(DistributionTimestamp(2024, time.June, 1)) {
		t.Fatalf("expected June 1 stamp, got %s", second.Date)
	}
}

func TestEventCandidates_AutoApprove(t *testing.T) {
	inv := monthlyInvestment()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	for _, c := range EventCandidates(inv, now, true) {
		if c.Type != models.TxnTypeDistribution {
			continue
		}
		if c.Status != models.TxnStatusApproved || !c.AutoApproved {
			t.Fatalf("expected auto-approved distribution, got %+v", c)
		}
	}
}

func TestEventCandidates_CompoundingPairs(t *testing.T) {
	confirmed := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	inv := models.Investment{
		ID:               "INV-10002",
		UserID:           "USR-1001",
		Amount:           10000,
		PaymentFrequency: models.FrequencyCompounding,
		LockupPeriod:     models.LockupOneYear,
		Status:           models.StatusActive,
		ConfirmedAt:      &confirmed,
	}
	now := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)

	cands := EventCandidates(inv, now, false)
	// Principal plus a distribution+contribution pair for February and March.
	if len(cands) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(cands))
	}

	febDist, febContrib := cands[1], cands[2]
	if febDist.Amount != 66.67 || febContrib.Amount != 66.67 {
		t.Fatalf("pair amounts must match: %v vs %v", febDist.Amount, febContrib.Amount)
	}
	if febDist.Status != models.TxnStatusReceived || febContrib.Status != models.TxnStatusReceived {
		t.Fatalf("compounding events must be received immediately")
	}
	if !febContrib.Date.Equal(febDist.Date.Add(time.Second)) {
		t.Fatalf("contribution must be dated one second after its distribution")
	}
	if febContrib.ReinvestOf == nil || *febContrib.ReinvestOf != febDist.ID {
		t.Fatalf("contribution must back-reference its distribution")
	}

	// March accrues on the compounded balance, not the principal.
	marDist := cands[3]
	if marDist.Amount != 67.11 {
		t.Fatalf("expected compounded 67.11, got %v", marDist.Amount)
	}
}

func TestEventCandidates_WithholdsFutureDated(t *testing.T) {
	confirmed := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	inv := models.Investment{
		ID:               "INV-10003",
		UserID:           "USR-1001",
		Amount:           10000,
		PaymentFrequency: models.FrequencyMonthly,
		LockupPeriod:     models.LockupOneYear,
		Status:           models.StatusActive,
		ConfirmedAt:      &confirmed,
	}
	// April has completed, but its payout instant (May 1, 9 AM Eastern)
	// has not arrived yet.
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	cands := EventCandidates(inv, now, false)
	if len(cands) != 1 {
		t.Fatalf("expected only the principal before the payout instant, got %d", len(cands))
	}

	// One hour later the stamp has passed.
	cands = EventCandidates(inv, now.Add(6*time.Hour), false)
	if len(cands) != 2 {
		t.Fatalf("expected the April distribution after the payout instant, got %d", len(cands))
	}
}

func TestEventCandidates_WithdrawnGeneratesNothing(t *testing.T) {
	inv := monthlyInvestment()
	inv.Status = models.StatusWithdrawn

	// A year after the payout the closed investment must not keep minting
	// pending distributions for the payouts desk.
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	if cands := EventCandidates(inv, now, false); cands != nil {
		t.Fatalf("withdrawn investment must yield nothing, got %d candidates", len(cands))
	}
}

func TestEventCandidates_ClockBeforeConfirmation(t *testing.T) {
	inv := monthlyInvestment()

	// Clock rewound a month and a half before the confirmation instant.
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	confirmed := time.Date(2024, time.June, 15, 13, 0, 0, 0, time.UTC)
	inv.ConfirmedAt = &confirmed

	cands := EventCandidates(inv, now, false)
	if cands != nil {
		t.Fatalf("expected no candidates before confirmation, got %d", len(cands))
	}

	// A second derivation under the same rewound clock must also be empty,
	// so a generate-prune-generate cycle settles instead of oscillating.
	for _, c := range EventCandidates(inv, now, false) {
		if c.Date.After(now) {
			t.Fatalf("candidate %s dated %s is after now %s", c.ID, c.Date, now)
		}
	}
}

func TestEventCandidates_UnconfirmedOrDraft(t *testing.T) {
	inv := monthlyInvestment()
	inv.ConfirmedAt = nil
	if cands := EventCandidates(inv, time.Now().UTC(), false); cands != nil {
		t.Fatalf("unconfirmed investment must yield nothing, got %d", len(cands))
	}

	inv = monthlyInvestment()
	inv.Status = models.StatusPending
	if cands := EventCandidates(inv, time.Now().UTC(), false); cands != nil {
		t.Fatalf("pending investment must yield nothing, got %d", len(cands))
	}
}

func TestEventCandidates_Deterministic(t *testing.T) {
	inv := monthlyInvestment()
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)

	a := EventCandidates(inv, now, false)
	b := EventCandidates(inv, now, false)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("regeneration must reproduce identical candidates")
	}
}
