package services

import (
	"errors"
	"fmt"
	"strings"
)

// Business-rule failures carry machine-checkable messages so callers can
// distinguish them from internal failures and decide whether to retry.
var (
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrLockupActive       = errors.New("lockup period has not ended")
	ErrWithdrawalNotOpen  = errors.New("withdrawal is not awaiting payout")
	ErrAmountTooSmall     = errors.New("minimum investment is $1,000")
	ErrAmountIncrement    = errors.New("investment amount must be in $10 increments")
	ErrIRAFrequency       = errors.New("IRA accounts support compounding investments only")
	ErrNotDraft           = errors.New("investment is no longer a draft")
)

// IllegalTransitionError names the rejected status pair and the set of
// transitions the current status allows. Never auto-corrected.
type IllegalTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func (e *IllegalTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("illegal status transition %s -> %s: %s is terminal", e.From, e.To, e.From)
	}
	return fmt.Sprintf("illegal status transition %s -> %s (allowed: %s)", e.From, e.To, strings.Join(e.Allowed, ", "))
}

// IntegrityError marks corrupted ledger data, e.g. a contribution whose
// distribution is missing or dated after it. The pass aborts rather than
// silently repairing financial data.
type IntegrityError struct {
	InvestmentID  string
	TransactionID string
	Reason        string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("ledger integrity violation on %s (%s): %s", e.InvestmentID, e.TransactionID, e.Reason)
}
