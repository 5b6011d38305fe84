package users

import (
	"net/http"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"github.com/gorilla/mux"
)

// POST /api/investments/{id}/withdraw starts the 90 day notice window.
func RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id := mux.Vars(r)["id"]

	db := database.DB
	wd, err := services.RequestWithdrawal(db, services.LoadClock(db), uid, id)
	if err != nil {
		writeInvestmentError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Withdrawal notice started",
		Data:    wd,
	})
}

// GET /api/withdrawals
func ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var withdrawals []models.Withdrawal
	if err := database.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: withdrawals})
}
