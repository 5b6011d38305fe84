package models

import (
	"time"

	"gorm.io/gorm"
)

// AppSetting is a singleton row of operator-controlled switches. The
// override time, when set, replaces the wall clock for every accrual
// computation until cleared.
type AppSetting struct {
	ID                       int       `json:"id" gorm:"primaryKey"`
	OverrideTime             *string   `json:"override_time" gorm:"size:40"`
	AutoApproveDistributions bool      `json:"auto_approve_distributions" gorm:"default:false"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}

// GetAppSetting returns the singleton settings row, creating it if missing.
func GetAppSetting(db *gorm.DB) (*AppSetting, error) {
	var s AppSetting
	err := db.First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = AppSetting{ID: 1}
		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
