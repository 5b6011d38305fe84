package services

import (
	"testing"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
)

func TestFinalPayout_MonthlyPrincipalOnly(t *testing.T) {
	confirmed := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	inv := models.Investment{
		Amount:           10000,
		PaymentFrequency: models.FrequencyMonthly,
		LockupPeriod:     models.LockupOneYear,
		ConfirmedAt:      &confirmed,
	}
	amount, earnings := FinalPayout(inv, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	if amount != 10000 || earnings != 0 {
		t.Fatalf("monthly payout must be principal only, got %v / %v", amount, earnings)
	}
}

func TestFinalPayout_CompoundingAtCompletionInstant(t *testing.T) {
	confirmed := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	inv := models.Investment{
		Amount:           10000,
		PaymentFrequency: models.FrequencyCompounding,
		LockupPeriod:     models.LockupOneYear,
		ConfirmedAt:      &confirmed,
	}

	// Completing on March 18 pays accrual through March 18: one full
	// month plus an 18-day partial on the compounded balance.
	amount, earnings := FinalPayout(inv, time.Date(2024, time.March, 18, 15, 0, 0, 0, time.UTC))
	if amount != 10105.63 {
		t.Fatalf("expected 10105.63, got %v", amount)
	}
	if earnings != 105.63 {
		t.Fatalf("expected earnings 105.63, got %v", earnings)
	}
}

func TestFinalPayout_TracksCompletionNotRequest(t *testing.T) {
	confirmed := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	inv := models.Investment{
		Amount:           10000,
		PaymentFrequency: models.FrequencyCompounding,
		LockupPeriod:     models.LockupOneYear,
		ConfirmedAt:      &confirmed,
	}

	requestDay := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	completionDay := requestDay.AddDate(0, 0, 47)
	dueDay := requestDay.AddDate(0, 0, NoticeWindowDays)

	atRequest, _ := FinalPayout(inv, requestDay)
	atCompletion, _ := FinalPayout(inv, completionDay)
	atDue, _ := FinalPayout(inv, dueDay)

	if atCompletion <= atRequest {
		t.Fatalf("day-47 payout must exceed the day-0 quote: %v vs %v", atCompletion, atRequest)
	}
	if atCompletion >= atDue {
		t.Fatalf("day-47 payout must be below the day-90 value: %v vs %v", atCompletion, atDue)
	}
}

func TestNoticeWindow(t *testing.T) {
	if NoticeWindowDays != 90 {
		t.Fatalf("notice window must be 90 days, got %d", NoticeWindowDays)
	}
}
