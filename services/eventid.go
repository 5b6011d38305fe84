package services

import (
	"fmt"
	"strings"
	"time"
)

// Deterministic event identifiers are the idempotency backbone: every
// generator derives them from identifying fields only, never from random
// values or wall-clock reads, so regeneration always lands on the same
// row. All event types share the one constructor below to keep the format
// from drifting apart.

const (
	eventKindInvestment   = "PRINCIPAL"
	eventKindDistribution = "DIST"
	eventKindContribution = "CONTRIB"
	eventKindRedemption   = "RED"
)

// TransactionID builds a canonical ledger event id from the investment id,
// the event kind and an optional disambiguating key.
func TransactionID(investmentID, kind, key string) string {
	if key == "" {
		return fmt.Sprintf("TXN-%s-%s", investmentID, kind)
	}
	return fmt.Sprintf("TXN-%s-%s-%s", investmentID, kind, key)
}

// MonthKey is the year-month disambiguator for recurring events.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// PrincipalID identifies the one-off transaction recording the invested
// principal.
func PrincipalID(investmentID string) string {
	return TransactionID(investmentID, eventKindInvestment, "")
}

// DistributionID identifies the distribution for the given accrual month.
func DistributionID(investmentID string, year int, month time.Month) string {
	return TransactionID(investmentID, eventKindDistribution, MonthKey(year, month))
}

// ContributionID identifies the reinvested contribution for the given
// accrual month.
func ContributionID(investmentID string, year int, month time.Month) string {
	return TransactionID(investmentID, eventKindContribution, MonthKey(year, month))
}

// RedemptionID identifies the redemption tied to a withdrawal.
func RedemptionID(investmentID, withdrawalID string) string {
	return TransactionID(investmentID, eventKindRedemption, withdrawalID)
}

// ActivityID derives the display-feed id mirroring a ledger event, sharing
// its deterministic key so the pair is pruned together.
func ActivityID(transactionID string) string {
	return "ACT-" + strings.TrimPrefix(transactionID, "TXN-")
}
