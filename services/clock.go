package services

import (
	"log"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"

	"gorm.io/gorm"
)

// Clock is the single authoritative "now" for a computation pass. Every
// accrual function takes one explicitly; nothing reads time.Now directly,
// so a pass observes one instant from start to finish.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock always returns the same instant. Used for the operator time
// override and in tests.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }

// LoadClock materializes the effective clock: the operator override when
// one is set, the wall clock otherwise. Read once at the start of a pass
// and held constant for its duration.
func LoadClock(db *gorm.DB) Clock {
	setting, err := models.GetAppSetting(db)
	if err != nil {
		log.Printf("[clock] settings unavailable, using system time: %v", err)
		return SystemClock()
	}
	if setting.OverrideTime == nil || *setting.OverrideTime == "" {
		return SystemClock()
	}
	t, err := time.Parse(time.RFC3339, *setting.OverrideTime)
	if err != nil {
		log.Printf("[clock] invalid override_time %q, using system time: %v", *setting.OverrideTime, err)
		return SystemClock()
	}
	return FixedClock{Instant: t.UTC()}
}
