package admins

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"
)

// GET /api/admin/time-machine
func GetTimeOverride(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	setting, err := models.GetAppSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"override_time":  setting.OverrideTime,
			"effective_time": services.LoadClock(db).Now().Format(time.RFC3339),
		},
	})
}

type timeOverrideRequest struct {
	OverrideTime string `json:"override_time"`
}

// PUT /api/admin/time-machine sets the clock every accrual computation
// sees. The ledger is re-derived immediately under the new time.
func SetTimeOverride(w http.ResponseWriter, r *http.Request) {
	var req timeOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	req.OverrideTime = strings.TrimSpace(req.OverrideTime)
	if _, err := time.Parse(time.RFC3339, req.OverrideTime); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "override_time must be RFC3339"})
		return
	}

	db := database.DB
	setting, err := models.GetAppSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	setting.OverrideTime = &req.OverrideTime
	if err := db.Save(setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	result, err := services.Resync(db, services.LoadClock(db))
	if err != nil {
		log.Printf("[admin/time-machine] resync: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Time set but ledger resync failed"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Time override set",
		Data: map[string]interface{}{
			"override_time": req.OverrideTime,
			"resync":        result,
		},
	})
}

// DELETE /api/admin/time-machine returns to the wall clock.
func ClearTimeOverride(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	setting, err := models.GetAppSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	setting.OverrideTime = nil
	if err := db.Save(setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	result, err := services.Resync(db, services.LoadClock(db))
	if err != nil {
		log.Printf("[admin/time-machine] resync: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Time cleared but ledger resync failed"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Time override cleared",
		Data:    map[string]interface{}{"resync": result},
	})
}

type autoApproveRequest struct {
	Enabled bool `json:"enabled"`
}

// PUT /api/admin/settings/auto-approve toggles automatic approval of
// newly generated monthly distributions. Existing events are untouched.
func SetAutoApprove(w http.ResponseWriter, r *http.Request) {
	var req autoApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	db := database.DB
	setting, err := models.GetAppSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	setting.AutoApproveDistributions = req.Enabled
	if err := db.Save(setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Auto-approve updated",
		Data:    map[string]interface{}{"auto_approve_distributions": setting.AutoApproveDistributions},
	})
}
