package models

import "time"

// BankAccount is payout destination metadata carried on monthly
// distributions. Only the last four digits of the account number are kept.
type BankAccount struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	UserID        string    `json:"user_id" gorm:"index;size:32;not null"`
	Nickname      string    `json:"nickname" gorm:"size:100"`
	BankName      string    `json:"bank_name" gorm:"size:100"`
	AccountLast4  string    `json:"account_last4" gorm:"size:4"`
	RoutingNumber string    `json:"routing_number" gorm:"size:9"`
	IsDefault     bool      `json:"is_default" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
