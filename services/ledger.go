package services

import (
	"errors"
	"log"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResyncResult reports what a generation pass changed.
type ResyncResult struct {
	UsersTouched  int `json:"users_touched"`
	EventsCreated int `json:"events_created"`
}

// Resync derives the complete event set for every confirmed investment as
// of the clock's instant and writes back the diff. Safe to call repeatedly:
// a second run with unchanged inputs creates and mutates nothing. Each
// investment is recomputed inside its own row-locked transaction, so
// concurrent passes serialize per investment instead of racing on the
// whole table.
func Resync(db *gorm.DB, clock Clock) (ResyncResult, error) {
	now := clock.Now()
	result := ResyncResult{}

	setting, err := models.GetAppSetting(db)
	if err != nil {
		return result, err
	}

	if err := pruneOrphans(db); err != nil {
		return result, err
	}

	var rows []struct {
		ID     string
		UserID string
	}
	err = db.Model(&models.Investment{}).
		Where("confirmed_at IS NOT NULL AND status IN ?", []string{
			models.StatusActive, models.StatusWithdrawalNotice, models.StatusWithdrawn,
		}).
		Select("id, user_id").Find(&rows).Error
	if err != nil {
		return result, err
	}

	touched := make(map[string]struct{})
	for _, row := range rows {
		created, err := resyncInvestment(db, row.ID, now, setting.AutoApproveDistributions)
		if err != nil {
			var ie *IntegrityError
			if errors.As(err, &ie) {
				// Corrupted financial data. Abort instead of repairing.
				return result, err
			}
			log.Printf("[resync] investment %s: %v", row.ID, err)
			continue
		}
		if created > 0 {
			touched[row.UserID] = struct{}{}
			result.EventsCreated += created
		}
	}
	result.UsersTouched = len(touched)
	return result, nil
}

// resyncInvestment recomputes one investment's ledger under a row lock:
// prune stale events, verify pair integrity, then ensure every candidate
// exists.
func resyncInvestment(db *gorm.DB, investmentID string, now time.Time, autoApprove bool) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", investmentID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvestmentNotFound
			}
			return err
		}

		if err := pruneFutureDated(tx, inv.ID, now); err != nil {
			return err
		}

		var existing []models.Transaction
		if err := tx.Where("investment_id = ?", inv.ID).Find(&existing).Error; err != nil {
			return err
		}
		if err := verifyPairIntegrity(inv.ID, existing); err != nil {
			return err
		}

		byID := make(map[string]models.Transaction, len(existing))
		for _, t := range existing {
			byID[t.ID] = t
		}

		for _, cand := range EventCandidates(inv, now, autoApprove) {
			madeNew, err := ensureEvent(tx, &inv, cand, byID)
			if err != nil {
				return err
			}
			if madeNew {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// pruneFutureDated drops events stamped after the current clock together
// with their activity mirrors. These are expected artifacts of the clock
// being moved backward; regeneration recreates them under the same ids
// once the clock catches up.
func pruneFutureDated(tx *gorm.DB, investmentID string, now time.Time) error {
	var stale []models.Transaction
	if err := tx.Where("investment_id = ? AND date > ?", investmentID, now).Find(&stale).Error; err != nil {
		return err
	}
	for _, t := range stale {
		if err := tx.Where("source_id = ?", t.ID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Transaction{}, "id = ?", t.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// pruneOrphans drops events and activity rows whose investment no longer
// exists.
func pruneOrphans(db *gorm.DB) error {
	invIDs := db.Model(&models.Investment{}).Select("id")
	if err := db.Where("investment_id NOT IN (?)", invIDs).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	return db.Where("investment_id != '' AND investment_id NOT IN (?)", invIDs).
		Delete(&models.Activity{}).Error
}

// verifyPairIntegrity checks that every persisted contribution references
// an existing distribution dated strictly before it.
func verifyPairIntegrity(investmentID string, txns []models.Transaction) error {
	byID := make(map[string]models.Transaction, len(txns))
	for _, t := range txns {
		byID[t.ID] = t
	}
	for _, t := range txns {
		if t.Type != models.TxnTypeContribution {
			continue
		}
		if t.ReinvestOf == nil || *t.ReinvestOf == "" {
			return &IntegrityError{
				InvestmentID:  investmentID,
				TransactionID: t.ID,
				Reason:        "contribution has no reinvest_of reference",
			}
		}
		dist, ok := byID[*t.ReinvestOf]
		if !ok {
			return &IntegrityError{
				InvestmentID:  investmentID,
				TransactionID: t.ID,
				Reason:        "referenced distribution " + *t.ReinvestOf + " does not exist",
			}
		}
		if !dist.Date.Before(t.Date) {
			return &IntegrityError{
				InvestmentID:  investmentID,
				TransactionID: t.ID,
				Reason:        "referenced distribution is not dated before the contribution",
			}
		}
	}
	return nil
}

// ensureEvent inserts the candidate when its id is unseen, otherwise
// merges in only fields whose values actually changed so an unchanged
// event keeps its updated_at. Returns whether a row was created.
func ensureEvent(tx *gorm.DB, inv *models.Investment, cand Candidate, byID map[string]models.Transaction) (bool, error) {
	existing, ok := byID[cand.ID]
	if !ok {
		txn := models.Transaction{
			ID:            cand.ID,
			InvestmentID:  inv.ID,
			UserID:        inv.UserID,
			Type:          cand.Type,
			Amount:        cand.Amount,
			Status:        mergeStatus("", cand.Status),
			Date:          cand.Date,
			ReinvestOf:    cand.ReinvestOf,
			BankAccountID: cand.BankAccountID,
			AutoApproved:  cand.AutoApproved,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return false, err
		}
		byID[cand.ID] = txn
		if cand.Type == models.TxnTypeDistribution || cand.Type == models.TxnTypeContribution {
			act := models.Activity{
				ID:           ActivityID(cand.ID),
				UserID:       inv.UserID,
				InvestmentID: inv.ID,
				Type:         cand.Type,
				Amount:       cand.Amount,
				Date:         cand.Date,
				SourceID:     cand.ID,
			}
			if err := tx.Create(&act).Error; err != nil {
				return false, err
			}
		}
		return true, nil
	}

	updates := changedFields(existing, cand)
	if len(updates) == 0 {
		return false, nil
	}
	if err := tx.Model(&models.Transaction{}).Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return false, err
	}
	return false, nil
}

// mergeStatus is the one place status merging happens during generation.
// An event that already exists keeps the status it has: approvals and
// rejections flow through their own endpoints, and a terminal
// received/rejected can never be pulled back to pending by a regeneration.
func mergeStatus(existing, candidate string) string {
	if existing == "" {
		return candidate
	}
	return existing
}

// changedFields diffs a persisted event against its regenerated candidate,
// returning only columns whose values differ.
func changedFields(existing models.Transaction, cand Candidate) map[string]interface{} {
	updates := make(map[string]interface{})
	if !utils.SameCents(existing.Amount, cand.Amount) {
		updates["amount"] = cand.Amount
	}
	if !existing.Date.Equal(cand.Date) {
		updates["date"] = cand.Date
	}
	if merged := mergeStatus(existing.Status, cand.Status); merged != existing.Status {
		updates["status"] = merged
	}
	if !sameStringPtr(existing.ReinvestOf, cand.ReinvestOf) {
		updates["reinvest_of"] = cand.ReinvestOf
	}
	if !sameStringPtr(existing.BankAccountID, cand.BankAccountID) {
		updates["bank_account_id"] = cand.BankAccountID
	}
	return updates
}

func sameStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
