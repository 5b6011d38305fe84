package users

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

const (
	minInvestmentAmount = 1000
	bondPrice           = 10
	wireThreshold       = 100000
)

type investmentRequest struct {
	Amount           float64 `json:"amount"`
	PaymentFrequency string  `json:"payment_frequency"`
	LockupPeriod     string  `json:"lockup_period"`
	BankAccountID    *string `json:"bank_account_id"`
}

// validateInvestmentInput applies the bond purchase rules. The amount must
// be at least $1,000 in whole $10 increments, and IRA accounts may only
// hold compounding investments.
func validateInvestmentInput(req investmentRequest, accountType string) string {
	cents := int64(math.Round(req.Amount * 100))
	if cents < minInvestmentAmount*100 {
		return "Minimum investment is $1,000"
	}
	if cents%(bondPrice*100) != 0 {
		return "Amount must be in $10 increments"
	}
	switch req.PaymentFrequency {
	case models.FrequencyMonthly, models.FrequencyCompounding:
	default:
		return "Payment frequency must be monthly or compounding"
	}
	switch req.LockupPeriod {
	case models.LockupOneYear, models.LockupThreeYear:
	default:
		return "Lockup period must be 1-year or 3-year"
	}
	if accountType == models.AccountTypeIRA && req.PaymentFrequency != models.FrequencyCompounding {
		return "IRA accounts only support compounding investments"
	}
	return ""
}

// paymentMethodFor returns wire for IRA accounts and large purchases, ach
// otherwise. Wire investments always require manual confirmation.
func paymentMethodFor(accountType string, amount float64) (method string, manual bool) {
	if accountType == models.AccountTypeIRA || amount > wireThreshold {
		return models.PaymentMethodWire, true
	}
	return models.PaymentMethodACH, false
}

// POST /api/investments
func CreateInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	db := database.DB

	var user models.User
	if err := db.First(&user, "id = ?", uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if msg := validateInvestmentInput(req, user.AccountType); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	if req.BankAccountID != nil {
		var ba models.BankAccount
		if err := db.Where("id = ? AND user_id = ?", *req.BankAccountID, uid).First(&ba).Error; err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Bank account not found"})
			return
		}
	}

	method, manual := paymentMethodFor(user.AccountType, req.Amount)
	inv := models.Investment{
		UserID:                 uid,
		Amount:                 utils.RoundCents(req.Amount),
		Bonds:                  int(math.Round(req.Amount)) / bondPrice,
		PaymentFrequency:       req.PaymentFrequency,
		LockupPeriod:           req.LockupPeriod,
		Status:                 models.StatusDraft,
		PaymentMethod:          method,
		RequiresManualApproval: manual,
		BankAccountID:          req.BankAccountID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		id, err := models.NextID(tx, models.IDPrefixInvestment)
		if err != nil {
			return err
		}
		inv.ID = id
		return tx.Create(&inv).Error
	})
	if err != nil {
		log.Printf("[investments] create error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Investment draft created", Data: inv})
}

type investmentView struct {
	models.Investment
	CurrentValue  float64 `json:"current_value"`
	TotalEarnings float64 `json:"total_earnings"`
}

func viewOf(inv models.Investment, clock services.Clock) investmentView {
	view := investmentView{Investment: inv, CurrentValue: inv.Amount}
	if inv.ConfirmedAt != nil {
		v := services.InvestmentValue(inv.Amount, inv.PaymentFrequency, inv.LockupPeriod, *inv.ConfirmedAt, clock.Now(), false)
		view.CurrentValue = v.Value
		view.TotalEarnings = v.Earnings
	}
	return view
}

// GET /api/investments
func ListInvestments(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	var investments []models.Investment
	if err := db.Where("user_id = ?", uid).Order("created_at DESC").Find(&investments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	clock := services.LoadClock(db)
	views := make([]investmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, viewOf(inv, clock))
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: views})
}

// GET /api/investments/{id}
func GetInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id := mux.Vars(r)["id"]

	db := database.DB
	var inv models.Investment
	if err := db.Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: viewOf(inv, services.LoadClock(db))})
}

// PATCH /api/investments/{id}, draft only
func UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id := mux.Vars(r)["id"]

	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	db := database.DB

	var user models.User
	if err := db.First(&user, "id = ?", uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if msg := validateInvestmentInput(req, user.AccountType); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	var inv models.Investment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; err != nil {
			return err
		}
		if inv.Status != models.StatusDraft {
			return services.ErrNotDraft
		}
		method, manual := paymentMethodFor(user.AccountType, req.Amount)
		inv.Amount = utils.RoundCents(req.Amount)
		inv.Bonds = int(math.Round(req.Amount)) / bondPrice
		inv.PaymentFrequency = req.PaymentFrequency
		inv.LockupPeriod = req.LockupPeriod
		inv.PaymentMethod = method
		inv.RequiresManualApproval = manual
		inv.BankAccountID = req.BankAccountID
		return tx.Save(&inv).Error
	})
	if err != nil {
		writeInvestmentError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment updated", Data: inv})
}

// DELETE /api/investments/{id}, draft only
func DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id := mux.Vars(r)["id"]

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		if err := tx.Clauses(lockForUpdate()).Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; err != nil {
			return err
		}
		if inv.Status != models.StatusDraft {
			return services.ErrNotDraft
		}
		return tx.Delete(&inv).Error
	})
	if err != nil {
		writeInvestmentError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment deleted"})
}

// POST /api/investments/{id}/submit moves a draft to pending review.
func SubmitInvestment(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id := mux.Vars(r)["id"]

	db := database.DB
	clock := services.LoadClock(db)

	var inv models.Investment
	if err := db.Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
		return
	}
	if inv.PaymentFrequency == models.FrequencyMonthly && inv.BankAccountID == nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Monthly investments require a payout bank account"})
		return
	}

	updated, err := services.TransitionInvestment(db, id, models.StatusPending, clock)
	if err != nil {
		writeInvestmentError(w, err)
		return
	}

	activity := models.Activity{
		UserID:       uid,
		InvestmentID: id,
		Type:         models.ActivityInvestmentSubmitted,
		Amount:       inv.Amount,
		Date:         clock.Now(),
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		actID, err := models.NextID(tx, models.IDPrefixActivity)
		if err != nil {
			return err
		}
		activity.ID = actID
		return tx.Create(&activity).Error
	}); err != nil {
		log.Printf("[investments] submit activity error: %v", err)
	}

	if _, err := services.Resync(db, clock); err != nil {
		log.Printf("[investments] resync after submit: %v", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment submitted for review", Data: updated})
}

func writeInvestmentError(w http.ResponseWriter, err error) {
	var transition *services.IllegalTransitionError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, services.ErrInvestmentNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
	case errors.Is(err, services.ErrNotDraft):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Only draft investments can be modified"})
	case errors.As(err, &transition):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: transition.Error()})
	case errors.Is(err, services.ErrLockupActive):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Lockup period has not ended"})
	case errors.Is(err, services.ErrWithdrawalNotOpen):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdrawal is not open"})
	default:
		log.Printf("[investments] error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
