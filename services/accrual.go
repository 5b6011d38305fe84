package services

import (
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"
)

// Fixed annual rates per lockup term.
const (
	RateOneYear   = 0.08
	RateThreeYear = 0.10
)

func AnnualRate(lockupPeriod string) float64 {
	if lockupPeriod == models.LockupThreeYear {
		return RateThreeYear
	}
	return RateOneYear
}

func MonthlyRate(lockupPeriod string) float64 {
	return AnnualRate(lockupPeriod) / 12
}

// LockupYears returns the lockup term length in years.
func LockupYears(lockupPeriod string) int {
	if lockupPeriod == models.LockupThreeYear {
		return 3
	}
	return 1
}

// AccrualStart returns the first accruing day: the calendar day after
// confirmation. The confirmation day itself does not accrue.
func AccrualStart(confirmedAt time.Time) time.Time {
	return DateOnly(confirmedAt).AddDate(0, 0, 1)
}

// SegmentInterest computes the unrounded interest a balance earns over one
// segment. Full months earn the whole monthly rate; partial months are
// prorated by day count within the month.
func SegmentInterest(seg Segment, balance, monthlyRate float64) float64 {
	if seg.Full {
		return balance * monthlyRate
	}
	return balance * monthlyRate * float64(seg.Days) / float64(seg.DaysInMonth)
}

// Valuation is an investment's worth at a point in time, split into the
// redeemable value and earnings to date.
type Valuation struct {
	Value    float64 `json:"value"`
	Earnings float64 `json:"earnings"`
}

// InvestmentValue computes an investment's valuation as of the given
// instant. Compounding balances grow segment over segment from an
// unrounded running balance; monthly-payout earnings are the sum of the
// per-segment amounts as persisted (each rounded to cents, since each is
// its own ledger event) while the redeemable value stays the principal.
// includePartial extends the final segment through asOf's date, used for
// final payouts; otherwise only fully completed months count.
func InvestmentValue(amount float64, frequency, lockupPeriod string, confirmedAt, asOf time.Time, includePartial bool) Valuation {
	start := AccrualStart(confirmedAt)
	end := LastCompletedMonthEnd(asOf)
	if includePartial {
		end = DateOnly(asOf)
	}
	if end.Before(start) {
		return Valuation{Value: utils.RoundCents(amount), Earnings: 0}
	}

	rate := MonthlyRate(lockupPeriod)
	segs := BuildSegments(start, end)

	if frequency == models.FrequencyCompounding {
		balance := amount
		for _, seg := range segs {
			balance += SegmentInterest(seg, balance, rate)
		}
		value := utils.RoundCents(balance)
		return Valuation{Value: value, Earnings: utils.RoundCents(value - amount)}
	}

	earnings := 0.0
	for _, seg := range segs {
		earnings += utils.RoundCents(SegmentInterest(seg, amount, rate))
	}
	return Valuation{Value: utils.RoundCents(amount), Earnings: utils.RoundCents(earnings)}
}
