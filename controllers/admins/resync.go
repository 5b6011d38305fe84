package admins

import (
	"log"
	"net/http"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/services"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"
)

// POST /api/admin/resync re-derives every confirmed investment's ledger
// from its terms and the current effective time.
func Resync(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	result, err := services.Resync(db, services.LoadClock(db))
	if err != nil {
		log.Printf("[admin/resync] %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Resync failed: " + err.Error()})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Resync complete", Data: result})
}
