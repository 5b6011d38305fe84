package admins

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"github.com/gorilla/mux"
)

// GET /api/admin/withdrawals
func ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))

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

	countQuery := db.Model(&models.Withdrawal{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var withdrawals []models.Withdrawal
	query := db.Model(&models.Withdrawal{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("payout_due_by ASC").Limit(limit).Offset(offset).Find(&withdrawals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": withdrawals,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}

// POST /api/admin/withdrawals/{id}/complete pays out at the value computed
// now, not the value quoted at request time.
func CompleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	db := database.DB
	wd, err := services.CompleteWithdrawal(db, services.LoadClock(db), id)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal completed", Data: wd})
}

// POST /api/admin/withdrawals/{id}/reject returns the investment to active.
func RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	db := database.DB
	wd, err := services.RejectWithdrawal(db, services.LoadClock(db), id)
	if err != nil {
		writeTransitionError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal rejected", Data: wd})
}
