package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
)

func TestApplyTransition_DraftToActiveRejected(t *testing.T) {
	inv := &models.Investment{ID: "INV-10001", Status: models.StatusDraft, LockupPeriod: models.LockupOneYear}
	err := ApplyTransition(inv, models.StatusActive, time.Now().UTC())
	if err == nil {
		t.Fatalf("expected draft -> active to be rejected")
	}
	var ite *IllegalTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected IllegalTransitionError, got %T", err)
	}
	if ite.From != models.StatusDraft || ite.To != models.StatusActive {
		t.Fatalf("error must name the pair, got %+v", ite)
	}
	if !strings.Contains(err.Error(), "draft -> active") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if inv.Status != models.StatusDraft {
		t.Fatalf("status must be untouched on rejection, got %s", inv.Status)
	}
}

func TestApplyTransition_PendingToActiveStampsLockup(t *testing.T) {
	now := time.Date(2024, time.April, 15, 14, 30, 0, 0, time.UTC)
	inv := &models.Investment{ID: "INV-10001", Status: models.StatusPending, LockupPeriod: models.LockupOneYear}

	if err := ApplyTransition(inv, models.StatusActive, now); err != nil {
		t.Fatalf("pending -> active failed: %v", err)
	}
	if inv.ConfirmedAt == nil || !inv.ConfirmedAt.Equal(now) {
		t.Fatalf("confirmation must be server-stamped, got %v", inv.ConfirmedAt)
	}
	want := now.AddDate(1, 0, 0)
	if inv.LockupEndDate == nil || !inv.LockupEndDate.Equal(want) {
		t.Fatalf("expected lockup end %s, got %v", want, inv.LockupEndDate)
	}
}

func TestApplyTransition_ThreeYearLockup(t *testing.T) {
	now := time.Date(2024, time.April, 15, 14, 30, 0, 0, time.UTC)
	inv := &models.Investment{Status: models.StatusPending, LockupPeriod: models.LockupThreeYear}

	if err := ApplyTransition(inv, models.StatusActive, now); err != nil {
		t.Fatalf("pending -> active failed: %v", err)
	}
	if !inv.LockupEndDate.Equal(now.AddDate(3, 0, 0)) {
		t.Fatalf("expected 3-year lockup end, got %v", inv.LockupEndDate)
	}
}

func TestApplyTransition_ActiveRecomputesLockupEnd(t *testing.T) {
	// A stale derivation must be overwritten, never copied forward.
	stale := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.April, 15, 14, 30, 0, 0, time.UTC)
	inv := &models.Investment{
		Status:        models.StatusPending,
		LockupPeriod:  models.LockupOneYear,
		ConfirmedAt:   &stale,
		LockupEndDate: &stale,
	}

	if err := ApplyTransition(inv, models.StatusActive, now); err != nil {
		t.Fatalf("pending -> active failed: %v", err)
	}
	if !inv.ConfirmedAt.Equal(now) || !inv.LockupEndDate.Equal(now.AddDate(1, 0, 0)) {
		t.Fatalf("stale confirmation not recomputed: %+v", inv)
	}
}

func TestApplyTransition_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []string{models.StatusRejected, models.StatusWithdrawn} {
		for _, target := range []string{
			models.StatusDraft, models.StatusPending, models.StatusActive,
			models.StatusWithdrawalNotice, models.StatusWithdrawn, models.StatusRejected,
		} {
			inv := &models.Investment{Status: terminal, LockupPeriod: models.LockupOneYear}
			if err := ApplyTransition(inv, target, time.Now().UTC()); err == nil {
				t.Fatalf("expected %s -> %s to be rejected", terminal, target)
			}
		}
	}
}

func TestApplyTransition_LegalPath(t *testing.T) {
	now := time.Now().UTC()
	inv := &models.Investment{Status: models.StatusDraft, LockupPeriod: models.LockupOneYear}
	for _, target := range []string{
		models.StatusPending, models.StatusActive,
		models.StatusWithdrawalNotice, models.StatusWithdrawn,
	} {
		if err := ApplyTransition(inv, target, now); err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
	}
	if !inv.Terminal() {
		t.Fatalf("expected terminal status at end of path, got %s", inv.Status)
	}
}

func TestCanTransition_PendingToRejected(t *testing.T) {
	if !CanTransition(models.StatusPending, models.StatusRejected) {
		t.Fatalf("pending -> rejected must be legal")
	}
	if CanTransition(models.StatusActive, models.StatusRejected) {
		t.Fatalf("active -> rejected must be illegal")
	}
}
