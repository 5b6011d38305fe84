package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pendingPayout struct {
	models.Transaction
	UserEmail    string `json:"user_email"`
	UserName     string `json:"user_name"`
	BankName     string `json:"bank_name"`
	AccountLast4 string `json:"account_last4"`
}

// GET /api/admin/payouts/pending lists monthly distributions awaiting
// transfer, joined with the payout destination.
func ListPendingPayouts(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var rows []pendingPayout
	err := db.Model(&models.Transaction{}).
		Select("transactions.*, users.email AS user_email, CONCAT(users.first_name, ' ', users.last_name) AS user_name, bank_accounts.bank_name, bank_accounts.account_last4").
		Joins("JOIN users ON users.id = transactions.user_id").
		Joins("LEFT JOIN bank_accounts ON bank_accounts.id = transactions.bank_account_id").
		Where("transactions.type = ? AND transactions.status IN ?", models.TxnTypeDistribution, []string{models.TxnStatusPending, models.TxnStatusApproved, models.TxnStatusFailed}).
		Order("transactions.date ASC").
		Scan(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

func lockDistribution(tx *gorm.DB, id string, txn *models.Transaction) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(txn).Error; err != nil {
		return err
	}
	if txn.Type != models.TxnTypeDistribution {
		return errors.New("not a distribution")
	}
	return nil
}

// POST /api/admin/payouts/{id}/complete marks a distribution as sent.
func CompletePayout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	db := database.DB
	clock := services.LoadClock(db)

	var txn models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockDistribution(tx, id, &txn); err != nil {
			return err
		}
		if txn.Status == models.TxnStatusReceived {
			return nil
		}
		return tx.Model(&txn).Updates(map[string]interface{}{
			"status":             models.TxnStatusReceived,
			"manually_completed": true,
			"failure_reason":     nil,
			"updated_at":         clock.Now(),
		}).Error
	})
	if err != nil {
		writePayoutError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payout marked complete", Data: txn})
}

// POST /api/admin/payouts/{id}/retry
func RetryPayout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	db := database.DB
	now := services.LoadClock(db).Now()

	var txn models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockDistribution(tx, id, &txn); err != nil {
			return err
		}
		if txn.Status == models.TxnStatusReceived {
			return errors.New("payout already completed")
		}
		return tx.Model(&txn).Updates(map[string]interface{}{
			"status":        models.TxnStatusApproved,
			"retry_count":   txn.RetryCount + 1,
			"last_retry_at": now,
		}).Error
	})
	if err != nil {
		writePayoutError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payout queued for retry", Data: txn})
}

type failPayoutRequest struct {
	Reason string `json:"reason"`
}

// POST /api/admin/payouts/{id}/fail
func FailPayout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req failPayoutRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		req.Reason = "transfer failed"
	}

	db := database.DB
	now := services.LoadClock(db).Now()

	var txn models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockDistribution(tx, id, &txn); err != nil {
			return err
		}
		if txn.Status == models.TxnStatusReceived {
			return errors.New("payout already completed")
		}
		return tx.Model(&txn).Updates(map[string]interface{}{
			"status":         models.TxnStatusFailed,
			"failure_reason": req.Reason,
			"last_retry_at":  now,
		}).Error
	})
	if err != nil {
		writePayoutError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Payout marked failed", Data: txn})
}

func writePayoutError(w http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payout not found"})
		return
	}
	utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: err.Error()})
}
