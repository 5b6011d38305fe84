package models

import "time"

const (
	TxnTypeInvestment   = "investment"
	TxnTypeDistribution = "distribution"
	TxnTypeContribution = "contribution"
	TxnTypeRedemption   = "redemption"
)

const (
	TxnStatusPending  = "pending"
	TxnStatusApproved = "approved"
	TxnStatusReceived = "received"
	TxnStatusRejected = "rejected"
	TxnStatusFailed   = "failed"
)

// Transaction is a ledger event. IDs are deterministic, derived from the
// investment, the event type and a disambiguating key, so regeneration
// finds existing rows instead of minting duplicates.
type Transaction struct {
	ID                string     `json:"id" gorm:"primaryKey;size:64"`
	InvestmentID      string     `json:"investment_id" gorm:"index;size:32;not null"`
	UserID            string     `json:"user_id" gorm:"index;size:32;not null"`
	Type              string     `json:"type" gorm:"size:20;not null"`
	Amount            float64    `json:"amount" gorm:"type:decimal(15,2);not null"`
	Status            string     `json:"status" gorm:"size:20;default:pending;index"`
	Date              time.Time  `json:"date" gorm:"index;not null"`
	ReinvestOf        *string    `json:"reinvest_of" gorm:"size:64"`
	WithdrawalID      *string    `json:"withdrawal_id" gorm:"size:32"`
	BankAccountID     *string    `json:"bank_account_id" gorm:"size:32"`
	AutoApproved      bool       `json:"auto_approved" gorm:"default:false"`
	RetryCount        int        `json:"retry_count" gorm:"default:0"`
	FailureReason     *string    `json:"failure_reason" gorm:"size:255"`
	LastRetryAt       *time.Time `json:"last_retry_at"`
	ManuallyCompleted bool       `json:"manually_completed" gorm:"default:false"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
