package models

import "time"

// Investment statuses. rejected and withdrawn are terminal.
const (
	StatusDraft            = "draft"
	StatusPending          = "pending"
	StatusActive           = "active"
	StatusRejected         = "rejected"
	StatusWithdrawalNotice = "withdrawal_notice"
	StatusWithdrawn        = "withdrawn"
)

const (
	FrequencyMonthly     = "monthly"
	FrequencyCompounding = "compounding"
)

const (
	LockupOneYear   = "1-year"
	LockupThreeYear = "3-year"
)

const (
	PaymentMethodACH  = "ach"
	PaymentMethodWire = "wire"
)

type Investment struct {
	ID                     string     `json:"id" gorm:"primaryKey;size:32"`
	UserID                 string     `json:"user_id" gorm:"index;size:32;not null"`
	Amount                 float64    `json:"amount" gorm:"type:decimal(15,2);not null"`
	Bonds                  int        `json:"bonds"`
	PaymentFrequency       string     `json:"payment_frequency" gorm:"size:20;not null"`
	LockupPeriod           string     `json:"lockup_period" gorm:"size:10;not null"`
	Status                 string     `json:"status" gorm:"size:20;default:draft;index"`
	PaymentMethod          string     `json:"payment_method" gorm:"size:10;default:ach"`
	RequiresManualApproval bool       `json:"requires_manual_approval" gorm:"default:false"`
	BankAccountID          *string    `json:"bank_account_id" gorm:"size:32"`
	ConfirmedAt            *time.Time `json:"confirmed_at"`
	LockupEndDate          *time.Time `json:"lockup_end_date"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}

// Terminal reports whether the status admits no further transitions.
func (i *Investment) Terminal() bool {
	return i.Status == StatusRejected || i.Status == StatusWithdrawn
}
