package services

import (
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/models"
	"github.com/robertventures/robert-ventures-investordesk-sub002/utils"
)

// Candidate is a ledger event a generator says should exist as of "now".
// The ledger writer decides whether it already does.
type Candidate struct {
	ID            string
	Type          string
	Amount        float64
	Status        string
	Date          time.Time
	ReinvestOf    *string
	BankAccountID *string
	AutoApproved  bool
}

// EventCandidates derives the complete interest-bearing event set for one
// confirmed investment as of now. Candidates whose scheduled instant has
// not yet arrived are withheld; they will appear on a later pass. Withdrawn
// investments are settled at their completion instant and generate nothing
// further; their persisted events stay as they are.
func EventCandidates(inv models.Investment, now time.Time, autoApprove bool) []Candidate {
	if inv.ConfirmedAt == nil {
		return nil
	}
	switch inv.Status {
	case models.StatusActive, models.StatusWithdrawalNotice:
	default:
		return nil
	}

	confirmedAt := inv.ConfirmedAt.UTC()
	if confirmedAt.After(now) {
		// Clock rewound before the confirmation. Emitting the principal
		// here would date it in the future and the next prune would
		// delete it again.
		return nil
	}

	candidates := []Candidate{{
		ID:     PrincipalID(inv.ID),
		Type:   models.TxnTypeInvestment,
		Amount: utils.RoundCents(inv.Amount),
		Status: models.TxnStatusReceived,
		Date:   confirmedAt,
	}}

	segs := BuildSegments(AccrualStart(*inv.ConfirmedAt), LastCompletedMonthEnd(now))
	rate := MonthlyRate(inv.LockupPeriod)
	balance := inv.Amount

	for _, seg := range segs {
		// Payout lands on the 1st of the month after the segment closes.
		payday := seg.End.AddDate(0, 0, 1)
		date := DistributionTimestamp(payday.Year(), payday.Month(), 1)
		if date.After(now) {
			break
		}

		if inv.PaymentFrequency == models.FrequencyCompounding {
			interest := SegmentInterest(seg, balance, rate)
			amount := utils.RoundCents(interest)
			distID := DistributionID(inv.ID, seg.End.Year(), seg.End.Month())
			reinvestOf := distID
			candidates = append(candidates,
				Candidate{
					ID:     distID,
					Type:   models.TxnTypeDistribution,
					Amount: amount,
					Status: models.TxnStatusReceived,
					Date:   date,
				},
				Candidate{
					ID:         ContributionID(inv.ID, seg.End.Year(), seg.End.Month()),
					Type:       models.TxnTypeContribution,
					Amount:     amount,
					Status:     models.TxnStatusReceived,
					Date:       date.Add(time.Second),
					ReinvestOf: &reinvestOf,
				},
			)
			balance += interest
			continue
		}

		status := models.TxnStatusPending
		if autoApprove {
			status = models.TxnStatusApproved
		}
		candidates = append(candidates, Candidate{
			ID:            DistributionID(inv.ID, seg.End.Year(), seg.End.Month()),
			Type:          models.TxnTypeDistribution,
			Amount:        utils.RoundCents(SegmentInterest(seg, inv.Amount, rate)),
			Status:        status,
			Date:          date,
			BankAccountID: inv.BankAccountID,
			AutoApproved:  autoApprove,
		})
	}

	return candidates
}
