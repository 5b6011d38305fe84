package services

import (
	"errors"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoticeWindowDays is the fixed interval between a withdrawal request and
// the payout deadline.
const NoticeWindowDays = 90

// FinalPayout computes the principal/earnings split a withdrawal pays out
// as of the given instant, including the partial final month. Monthly
// investments return principal only (earnings were distributed monthly);
// compounding investments return the fully compounded balance.
func FinalPayout(inv models.Investment, asOf time.Time) (amount, earnings float64) {
	if inv.ConfirmedAt == nil || inv.PaymentFrequency != models.FrequencyCompounding {
		return inv.Amount, 0
	}
	v := InvestmentValue(inv.Amount, inv.PaymentFrequency, inv.LockupPeriod, *inv.ConfirmedAt, asOf, true)
	return v.Value, v.Earnings
}

// RequestWithdrawal opens the notice window on an active investment past
// its lockup end. The value snapshot taken here is a display quote only;
// the binding amount is computed at completion time.
func RequestWithdrawal(db *gorm.DB, clock Clock, userID, investmentID string) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", investmentID, userID).
			First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvestmentNotFound
			}
			return err
		}

		now := clock.Now()
		if inv.LockupEndDate != nil && now.Before(*inv.LockupEndDate) {
			return ErrLockupActive
		}
		if err := ApplyTransition(&inv, models.StatusWithdrawalNotice, now); err != nil {
			return err
		}

		quotedAmount, quotedEarnings := FinalPayout(inv, now)

		wdID, err := models.NextID(tx, models.IDPrefixWithdrawal)
		if err != nil {
			return err
		}
		wd = models.Withdrawal{
			ID:             wdID,
			InvestmentID:   inv.ID,
			UserID:         inv.UserID,
			Status:         models.WithdrawalStatusNotice,
			NoticeStartAt:  now,
			PayoutDueBy:    now.AddDate(0, 0, NoticeWindowDays),
			QuotedAmount:   quotedAmount,
			QuotedEarnings: quotedEarnings,
		}
		if err := tx.Create(&wd).Error; err != nil {
			return err
		}
		if err := tx.Save(&inv).Error; err != nil {
			return err
		}

		redemption := models.Transaction{
			ID:           RedemptionID(inv.ID, wd.ID),
			InvestmentID: inv.ID,
			UserID:       inv.UserID,
			Type:         models.TxnTypeRedemption,
			Amount:       quotedAmount,
			Status:       models.TxnStatusPending,
			Date:         now,
			WithdrawalID: &wd.ID,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}

		return recordActivity(tx, inv.UserID, inv.ID, models.ActivityWithdrawalRequested, quotedAmount, now, wd.ID)
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// CompleteWithdrawal finalizes a payout. The final amount reflects accrual
// through the completion instant, which may be anywhere inside or after
// the notice window, not through the request or the due date.
func CompleteWithdrawal(db *gorm.DB, clock Clock, withdrawalID string) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		now := clock.Now()
		inv, err := lockOpenWithdrawal(tx, withdrawalID, &wd)
		if err != nil {
			return err
		}

		amount, earnings := FinalPayout(*inv, now)
		wd.Status = models.WithdrawalStatusApproved
		wd.FinalAmount = &amount
		wd.FinalEarnings = &earnings
		wd.CompletedAt = &now
		if err := tx.Save(&wd).Error; err != nil {
			return err
		}

		if err := ApplyTransition(inv, models.StatusWithdrawn, now); err != nil {
			return err
		}
		if err := tx.Save(inv).Error; err != nil {
			return err
		}
		if err := releaseAccountTypeLock(tx, inv.UserID); err != nil {
			return err
		}

		if err := settleRedemption(tx, inv.ID, wd.ID, models.TxnStatusReceived, amount, now); err != nil {
			return err
		}
		return recordActivity(tx, inv.UserID, inv.ID, models.ActivityWithdrawalCompleted, amount, now, wd.ID)
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// RejectWithdrawal closes the notice window without paying out. The
// investment reverts to active with its original confirmation untouched,
// and the redemption is marked rejected.
func RejectWithdrawal(db *gorm.DB, clock Clock, withdrawalID string) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		now := clock.Now()
		inv, err := lockOpenWithdrawal(tx, withdrawalID, &wd)
		if err != nil {
			return err
		}

		wd.Status = models.WithdrawalStatusRejected
		if err := tx.Save(&wd).Error; err != nil {
			return err
		}

		// Administrative revert, not a state-machine transition: the
		// confirmation instant and lockup end must stay as they were.
		if err := tx.Model(&models.Investment{}).Where("id = ?", inv.ID).
			Update("status", models.StatusActive).Error; err != nil {
			return err
		}

		if err := settleRedemption(tx, inv.ID, wd.ID, models.TxnStatusRejected, wd.QuotedAmount, now); err != nil {
			return err
		}
		return recordActivity(tx, inv.UserID, inv.ID, models.ActivityWithdrawalRejected, 0, now, wd.ID)
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// TerminateInvestment is the administrative fast path: it opens a
// withdrawal if none is pending and pays it out immediately. With
// overrideLockup the lockup check is skipped.
func TerminateInvestment(db *gorm.DB, clock Clock, investmentID string, overrideLockup bool) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", investmentID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvestmentNotFound
			}
			return err
		}

		now := clock.Now()

		if inv.Status == models.StatusActive {
			if !overrideLockup && inv.LockupEndDate != nil && now.Before(*inv.LockupEndDate) {
				return ErrLockupActive
			}
			if err := ApplyTransition(&inv, models.StatusWithdrawalNotice, now); err != nil {
				return err
			}
			quotedAmount, quotedEarnings := FinalPayout(inv, now)
			wdID, err := models.NextID(tx, models.IDPrefixWithdrawal)
			if err != nil {
				return err
			}
			wd = models.Withdrawal{
				ID:             wdID,
				InvestmentID:   inv.ID,
				UserID:         inv.UserID,
				Status:         models.WithdrawalStatusNotice,
				NoticeStartAt:  now,
				PayoutDueBy:    now.AddDate(0, 0, NoticeWindowDays),
				QuotedAmount:   quotedAmount,
				QuotedEarnings: quotedEarnings,
			}
			if err := tx.Create(&wd).Error; err != nil {
				return err
			}
			redemption := models.Transaction{
				ID:           RedemptionID(inv.ID, wd.ID),
				InvestmentID: inv.ID,
				UserID:       inv.UserID,
				Type:         models.TxnTypeRedemption,
				Amount:       quotedAmount,
				Status:       models.TxnStatusPending,
				Date:         now,
				WithdrawalID: &wd.ID,
			}
			if err := tx.Create(&redemption).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("investment_id = ? AND status = ?", inv.ID, models.WithdrawalStatusNotice).
				First(&wd).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrWithdrawalNotFound
				}
				return err
			}
		}

		amount, earnings := FinalPayout(inv, now)
		wd.Status = models.WithdrawalStatusApproved
		wd.FinalAmount = &amount
		wd.FinalEarnings = &earnings
		wd.CompletedAt = &now
		if err := tx.Save(&wd).Error; err != nil {
			return err
		}

		if err := ApplyTransition(&inv, models.StatusWithdrawn, now); err != nil {
			return err
		}
		if err := tx.Save(&inv).Error; err != nil {
			return err
		}
		if err := releaseAccountTypeLock(tx, inv.UserID); err != nil {
			return err
		}

		if err := settleRedemption(tx, inv.ID, wd.ID, models.TxnStatusReceived, amount, now); err != nil {
			return err
		}
		return recordActivity(tx, inv.UserID, inv.ID, models.ActivityInvestmentTerminated, amount, now, wd.ID)
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// lockOpenWithdrawal loads a withdrawal still in its notice window and its
// investment, both under row locks.
func lockOpenWithdrawal(tx *gorm.DB, withdrawalID string, wd *models.Withdrawal) (*models.Investment, error) {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", withdrawalID).First(wd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	if wd.Status != models.WithdrawalStatusNotice {
		return nil, ErrWithdrawalNotOpen
	}

	var inv models.Investment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", wd.InvestmentID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestmentNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// settleRedemption moves the withdrawal's redemption event to its final
// status and the recomputed amount.
func settleRedemption(tx *gorm.DB, investmentID, withdrawalID, status string, amount float64, at time.Time) error {
	return tx.Model(&models.Transaction{}).
		Where("id = ?", RedemptionID(investmentID, withdrawalID)).
		Updates(map[string]interface{}{
			"status": status,
			"amount": amount,
			"date":   at,
		}).Error
}

// recordActivity appends a lifecycle entry to the user-visible feed.
func recordActivity(tx *gorm.DB, userID, investmentID, kind string, amount float64, at time.Time, sourceID string) error {
	actID, err := models.NextID(tx, models.IDPrefixActivity)
	if err != nil {
		return err
	}
	return tx.Create(&models.Activity{
		ID:           actID,
		UserID:       userID,
		InvestmentID: investmentID,
		Type:         kind,
		Amount:       amount,
		Date:         at,
		SourceID:     sourceID,
	}).Error
}
