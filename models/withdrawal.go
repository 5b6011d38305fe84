package models

import "time"

const (
	WithdrawalStatusNotice   = "notice"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// Withdrawal carries both the quote taken at request time (display only)
// and the final split computed at completion time. Only the final values
// are binding.
type Withdrawal struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	InvestmentID   string     `json:"investment_id" gorm:"index;size:32;not null"`
	UserID         string     `json:"user_id" gorm:"index;size:32;not null"`
	Status         string     `json:"status" gorm:"size:20;default:notice"`
	NoticeStartAt  time.Time  `json:"notice_start_at" gorm:"not null"`
	PayoutDueBy    time.Time  `json:"payout_due_by" gorm:"not null"`
	QuotedAmount   float64    `json:"quoted_amount" gorm:"type:decimal(15,2)"`
	QuotedEarnings float64    `json:"quoted_earnings" gorm:"type:decimal(15,2)"`
	FinalAmount    *float64   `json:"final_amount" gorm:"type:decimal(15,2)"`
	FinalEarnings  *float64   `json:"final_earnings" gorm:"type:decimal(15,2)"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
