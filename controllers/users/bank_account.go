package users

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/robertventures/robert-ventures-investordesk-sub002/database"
	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"

	"gorm.io/gorm"
)

type bankAccountRequest struct {
	Nickname      string `json:"nickname"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`
	IsDefault     bool   `json:"is_default"`
}

// GET /api/bank-accounts
func ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var accounts []models.BankAccount
	if err := database.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&accounts).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: accounts})
}

// POST /api/bank-accounts
func CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	req.BankName = strings.TrimSpace(req.BankName)
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	req.RoutingNumber = strings.TrimSpace(req.RoutingNumber)

	if req.BankName == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Bank name is required"})
		return
	}
	if len(req.AccountNumber) < 4 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "A valid account number is required"})
		return
	}
	if len(req.RoutingNumber) != 9 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Routing number must be 9 digits"})
		return
	}

	account := models.BankAccount{
		UserID:        uid,
		Nickname:      strings.TrimSpace(req.Nickname),
		BankName:      req.BankName,
		AccountLast4:  req.AccountNumber[len(req.AccountNumber)-4:],
		RoutingNumber: req.RoutingNumber,
		IsDefault:     req.IsDefault,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		id, err := models.NextID(tx, models.IDPrefixBankAccount)
		if err != nil {
			return err
		}
		account.ID = id
		if account.IsDefault {
			if err := tx.Model(&models.BankAccount{}).Where("user_id = ?", uid).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		log.Printf("[bank-accounts] create error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Bank account saved", Data: account})
}
