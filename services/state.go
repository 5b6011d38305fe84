package services

import (
	"errors"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var legalTransitions = map[string][]string{
	models.StatusDraft:            {models.StatusPending},
	models.StatusPending:          {models.StatusActive, models.StatusRejected},
	models.StatusActive:           {models.StatusWithdrawalNotice},
	models.StatusWithdrawalNotice: {models.StatusWithdrawn},
	models.StatusRejected:         {},
	models.StatusWithdrawn:        {},
}

// CanTransition reports whether from -> to is a legal status move.
func CanTransition(from, to string) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// LockupEnd derives the lockup end from the confirmation instant.
func LockupEnd(confirmedAt time.Time, lockupPeriod string) time.Time {
	return confirmedAt.AddDate(LockupYears(lockupPeriod), 0, 0)
}

// ApplyTransition moves the investment to the target status, applying the
// transition's side effects against the struct. The confirmation instant
// comes from the server clock, never from a client. lockup_end_date is
// recomputed from scratch on every entry into active so a retried
// confirmation can never leave a stale derivation behind.
func ApplyTransition(inv *models.Investment, target string, now time.Time) error {
	if !CanTransition(inv.Status, target) {
		allowed := legalTransitions[inv.Status]
		return &IllegalTransitionError{From: inv.Status, To: target, Allowed: allowed}
	}

	if target == models.StatusActive {
		confirmed := now.UTC()
		inv.ConfirmedAt = &confirmed
		end := LockupEnd(confirmed, inv.LockupPeriod)
		inv.LockupEndDate = &end
	}

	inv.Status = target
	return nil
}

// TransitionInvestment loads the investment under a row lock, applies the
// transition and persists it. Terminal transitions release the owner's
// account-type lock when no other non-terminal investment remains.
func TransitionInvestment(db *gorm.DB, investmentID, target string, clock Clock) (*models.Investment, error) {
	var inv models.Investment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", investmentID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvestmentNotFound
			}
			return err
		}

		if err := ApplyTransition(&inv, target, clock.Now()); err != nil {
			return err
		}
		if err := tx.Save(&inv).Error; err != nil {
			return err
		}

		if inv.Terminal() {
			return releaseAccountTypeLock(tx, inv.UserID)
		}
		if target == models.StatusActive {
			// A live investment pins the account type.
			return tx.Model(&models.User{}).Where("id = ?", inv.UserID).
				Update("account_type_locked", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// releaseAccountTypeLock clears the user's account-type lock when every
// remaining investment is terminal.
func releaseAccountTypeLock(tx *gorm.DB, userID string) error {
	var live int64
	if err := tx.Model(&models.Investment{}).
		Where("user_id = ? AND status NOT IN ?", userID,
			[]string{models.StatusRejected, models.StatusWithdrawn}).
		Count(&live).Error; err != nil {
		return err
	}
	if live > 0 {
		return nil
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		Update("account_type_locked", false).Error
}
