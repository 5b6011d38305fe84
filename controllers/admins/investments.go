package admins

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /api/admin/investments
func ListInvestments(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	db := database.DB

	countQuery := db.Model(&models.Investment{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	if userID != "" {
		countQuery = countQuery.Where("user_id = ?", userID)
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var investments []models.Investment
	query := db.Model(&models.Investment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&investments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": investments,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}

// POST /api/admin/investments/{id}/confirm activates a pending investment
// and backfills its ledger immediately.
func ConfirmInvestment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	db := database.DB
	clock := services.LoadClock(db)

	inv, err := services.TransitionInvestment(db, id, models.StatusActive, clock)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	recordAdminActivity(db, inv.UserID, inv.ID, models.ActivityInvestmentConfirmed, inv.Amount, clock)

	// Ledger backfill is best effort here; the periodic resync repairs
	// anything this pass misses.
	if _, err := services.Resync(db, clock); err != nil {
		log.Printf("[admin/investments] resync after confirm: %v", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment confirmed", Data: inv})
}

// POST /api/admin/investments/{id}/reject
func RejectInvestment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	db := database.DB
	clock := services.LoadClock(db)

	inv, err := services.TransitionInvestment(db, id, models.StatusRejected, clock)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	recordAdminActivity(db, inv.UserID, inv.ID, models.ActivityInvestmentRejected, inv.Amount, clock)

	if _, err := services.Resync(db, clock); err != nil {
		log.Printf("[admin/investments] resync after reject: %v", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment rejected", Data: inv})
}

type terminateRequest struct {
	OverrideLockup bool `json:"override_lockup"`
}

// POST /api/admin/investments/{id}/terminate pays the investment out
// immediately, skipping the notice window.
func TerminateInvestment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req terminateRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	db := database.DB
	clock := services.LoadClock(db)

	wd, err := services.TerminateInvestment(db, clock, id, req.OverrideLockup)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment terminated", Data: wd})
}

func recordAdminActivity(db *gorm.DB, userID, investmentID, kind string, amount float64, clock services.Clock) {
	activity := models.Activity{
		UserID:       userID,
		InvestmentID: investmentID,
		Type:         kind,
		Amount:       amount,
		Date:         clock.Now(),
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		id, err := models.NextID(tx, models.IDPrefixActivity)
		if err != nil {
			return err
		}
		activity.ID = id
		return tx.Create(&activity).Error
	}); err != nil {
		log.Printf("[admin] activity %s for %s: %v", kind, investmentID, err)
	}
}

func writeTransitionError(w http.ResponseWriter, err error) {
	var transition *services.IllegalTransitionError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, services.ErrInvestmentNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
	case errors.Is(err, services.ErrWithdrawalNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Withdrawal not found"})
	case errors.As(err, &transition):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: transition.Error()})
	case errors.Is(err, services.ErrLockupActive):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Lockup period has not ended"})
	case errors.Is(err, services.ErrWithdrawalNotOpen):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdrawal is not open"})
	default:
		log.Printf("[admin] error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
