package models

import "time"

const (
	ActivityInvestmentSubmitted  = "investment_submitted"
	ActivityInvestmentConfirmed  = "investment_confirmed"
	ActivityInvestmentRejected   = "investment_rejected"
	ActivityDistribution         = "distribution"
	ActivityContribution         = "contribution"
	ActivityWithdrawalRequested  = "withdrawal_requested"
	ActivityWithdrawalCompleted  = "withdrawal_completed"
	ActivityWithdrawalRejected   = "withdrawal_rejected"
	ActivityInvestmentTerminated = "investment_terminated"
)

// Activity is an append-only display projection. Entries that mirror
// ledger transactions share the transaction's deterministic key via
// SourceID and are pruned together with it. Never an input to money math.
type Activity struct {
	ID           string    `json:"id" gorm:"primaryKey;size:64"`
	UserID       string    `json:"user_id" gorm:"index;size:32;not null"`
	InvestmentID string    `json:"investment_id" gorm:"index;size:32"`
	Type         string    `json:"type" gorm:"size:30;not null"`
	Amount       float64   `json:"amount" gorm:"type:decimal(15,2)"`
	Date         time.Time `json:"date" gorm:"index;not null"`
	SourceID     string    `json:"source_id" gorm:"index;size:64"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}
