package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Prefixes for human-readable sequential IDs.
const (
	IDPrefixUser        = "USR"
	IDPrefixInvestment  = "INV"
	IDPrefixWithdrawal  = "WD"
	IDPrefixActivity    = "ACT"
	IDPrefixBankAccount = "BANK"
)

var counterSeeds = map[string]int64{
	IDPrefixUser:        1001,
	IDPrefixInvestment:  10001,
	IDPrefixWithdrawal:  10001,
	IDPrefixActivity:    10001,
	IDPrefixBankAccount: 10001,
}

type IDCounter struct {
	Prefix string `gorm:"primaryKey;size:10"`
	Next   int64  `gorm:"not null"`
}

func (IDCounter) TableName() string {
	return "id_counters"
}

// NextID allocates the next sequential ID for the given prefix, e.g.
// "INV-10001". The counter row is locked so concurrent allocations never
// hand out the same value; call inside a transaction.
func NextID(tx *gorm.DB, prefix string) (string, error) {
	seed, ok := counterSeeds[prefix]
	if !ok {
		return "", fmt.Errorf("unknown id prefix %q", prefix)
	}

	var c IDCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prefix = ?", prefix).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = IDCounter{Prefix: prefix, Next: seed}
		if err := tx.Create(&c).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s-%d", c.Prefix, c.Next)
	c.Next++
	if err := tx.Save(&c).Error; err != nil {
		return "", err
	}
	return id, nil
}
