package services

import (
	"testing"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
)

func TestMergeStatus(t *testing.T) {
	cases := []struct {
		existing, candidate, want string
	}{
		// New rows take the candidate status.
		{"", models.TxnStatusPending, models.TxnStatusPending},
		{"", models.TxnStatusApproved, models.TxnStatusApproved},
		// Existing rows keep their status: approvals flow through their
		// own endpoints, and terminal statuses never regress to pending.
		{models.TxnStatusReceived, models.TxnStatusPending, models.TxnStatusReceived},
		{models.TxnStatusRejected, models.TxnStatusPending, models.TxnStatusRejected},
		{models.TxnStatusApproved, models.TxnStatusPending, models.TxnStatusApproved},
		{models.TxnStatusPending, models.TxnStatusApproved, models.TxnStatusPending},
		{models.TxnStatusFailed, models.TxnStatusPending, models.TxnStatusFailed},
	}
	for _, c := range cases {
		if got := mergeStatus(c.existing, c.candidate); got != c.want {
			t.Fatalf("mergeStatus(%q, %q) = %q, want %q", c.existing, c.candidate, got, c.want)
		}
	}
}

func TestChangedFields_NoopForIdenticalEvent(t *testing.T) {
	when := DistributionTimestamp(2024, time.May, 1)
	existing := models.Transaction{
		ID:     "TXN-INV-10001-DIST-2024-04",
		Type:   models.TxnTypeDistribution,
		Amount: 33.33,
		Status: models.TxnStatusPending,
		Date:   when,
	}
	cand := Candidate{
		ID:     existing.ID,
		Type:   existing.Type,
		Amount: 33.33,
		Status: models.TxnStatusPending,
		Date:   when,
	}
	if updates := changedFields(existing, cand); len(updates) != 0 {
		t.Fatalf("identical regeneration must be a no-op, got %v", updates)
	}
}

func TestChangedFields_AmountAndDateOnly(t *testing.T) {
	existing := models.Transaction{
		Amount: 33.33,
		Status: models.TxnStatusApproved,
		Date:   DistributionTimestamp(2024, time.May, 1),
	}
	cand := Candidate{
		Amount: 34.00,
		Status: models.TxnStatusPending,
		Date:   DistributionTimestamp(2024, time.June, 1),
	}
	updates := changedFields(existing, cand)
	if len(updates) != 2 {
		t.Fatalf("expected amount and date updates only, got %v", updates)
	}
	if _, ok := updates["status"]; ok {
		t.Fatalf("approved status must never be touched by regeneration")
	}
}

func TestVerifyPairIntegrity_ValidPair(t *testing.T) {
	distID := "TXN-INV-10001-DIST-2024-02"
	when := DistributionTimestamp(2024, time.March, 1)
	txns := []models.Transaction{
		{ID: distID, Type: models.TxnTypeDistribution, Date: when},
		{ID: "TXN-INV-10001-CONTRIB-2024-02", Type: models.TxnTypeContribution, Date: when.Add(time.Second), ReinvestOf: &distID},
	}
	if err := verifyPairIntegrity("INV-10001", txns); err != nil {
		t.Fatalf("valid pair flagged: %v", err)
	}
}

func TestVerifyPairIntegrity_MissingReference(t *testing.T) {
	missing := "TXN-INV-10001-DIST-2024-02"
	txns := []models.Transaction{
		{ID: "TXN-INV-10001-CONTRIB-2024-02", Type: models.TxnTypeContribution, Date: time.Now().UTC(), ReinvestOf: &missing},
	}
	err := verifyPairIntegrity("INV-10001", txns)
	if err == nil {
		t.Fatalf("dangling contribution must fail loudly")
	}
	if _, ok := err.(*IntegrityError); !ok {
		t.Fatalf("expected IntegrityError, got %T", err)
	}
}

func TestVerifyPairIntegrity_OrderingViolation(t *testing.T) {
	distID := "TXN-INV-10001-DIST-2024-02"
	when := DistributionTimestamp(2024, time.March, 1)
	txns := []models.Transaction{
		{ID: distID, Type: models.TxnTypeDistribution, Date: when.Add(time.Minute)},
		{ID: "TXN-INV-10001-CONTRIB-2024-02", Type: models.TxnTypeContribution, Date: when, ReinvestOf: &distID},
	}
	if err := verifyPairIntegrity("INV-10001", txns); err == nil {
		t.Fatalf("distribution dated after its contribution must fail")
	}
}

func TestVerifyPairIntegrity_NoReference(t *testing.T) {
	txns := []models.Transaction{
		{ID: "TXN-INV-10001-CONTRIB-2024-02", Type: models.TxnTypeContribution, Date: time.Now().UTC()},
	}
	if err := verifyPairIntegrity("INV-10001", txns); err == nil {
		t.Fatalf("contribution without reinvest_of must fail")
	}
}
