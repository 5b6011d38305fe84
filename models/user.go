package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	AccountTypeIndividual = "individual"
	AccountTypeJoint      = "joint"
	AccountTypeIRA        = "ira"
	AccountTypeEntity     = "entity"
)

type User struct {
	ID                string    `json:"id" gorm:"primaryKey;size:32"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password          string    `json:"-" gorm:"not null"`
	FirstName         string    `json:"first_name" gorm:"size:100"`
	LastName          string    `json:"last_name" gorm:"size:100"`
	AccountType       string    `json:"account_type" gorm:"size:20;default:individual"`
	AccountTypeLocked bool      `json:"account_type_locked" gorm:"default:false"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// ValidatePassword checks if the provided password matches the hashed password
func (u *User) ValidatePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
