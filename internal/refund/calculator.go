package refund

import (
	"fmt"
	"math"
	"time"
)

// Mode selects which percentage table applies. Credits run a notch higher
// than refunds because no processing fee is withheld.
type Mode string

const (
	ModeRefund Mode = "REFUND"
	ModeCredit Mode = "CREDIT"
)

// TierNone marks a decision that matched no tier (zero payment, requests
// after week 5, or the fallback policy).
const TierNone = -1

// RefundContext carries everything about the request itself: what was paid,
// whether the customer wants money back or store credit, and when they asked.
type RefundContext struct {
	TotalPaid   float64
	Mode        Mode
	SubmittedAt time.Time
}

// RefundDecision is the computed outcome. AmountDue never exceeds TotalPaid.
type RefundDecision struct {
	AmountDue         float64 `json:"amount_due"`
	TierIndex         int     `json:"tier_index"`
	Percentage        float64 `json:"percentage"`
	PenaltyPercentage float64 `json:"penalty_percentage"`
	Explanation       string  `json:"explanation"`
	IsFallback        bool    `json:"is_fallback"`
}

var (
	refundPercentages  = [6]float64{95, 90, 80, 70, 60, 50}
	creditPercentages  = [6]float64{100, 95, 85, 75, 65, 55}
	penaltyPercentages = [6]float64{0, 5, 15, 25, 35, 45}
)

// Calculate computes the tiered refund or credit amount for a resolved
// season schedule. Week boundaries run weekly from the season start; an
// off-date landing exactly on a boundary pushes that boundary and every
// later one out by a week, and the shifts compound.
func Calculate(schedule *Schedule, rc RefundContext) RefundDecision {
	if rc.TotalPaid == 0 {
		return RefundDecision{
			TierIndex:   TierNone,
			Explanation: "no payment was made for this order",
		}
	}

	boundaries := weekBoundaries(schedule)

	tier := TierNone
	for i, b := range boundaries {
		if b.After(rc.SubmittedAt) {
			tier = i
			break
		}
	}
	if tier == TierNone {
		return RefundDecision{
			TierIndex:   TierNone,
			Explanation: "no refund — the request came after week 5 had already started",
		}
	}

	var percentage float64
	if rc.Mode == ModeCredit {
		percentage = creditPercentages[tier]
	} else {
		percentage = refundPercentages[tier]
	}
	penalty := penaltyPercentages[tier]

	explanation := fmt.Sprintf("request submitted %s: %s %.0f%% of the %.2f paid",
		tierTiming(tier), amountNoun(rc.Mode), percentage, rc.TotalPaid)
	if rc.Mode != ModeCredit {
		explanation += " (a processing fee is withheld from refunds)"
	}

	return RefundDecision{
		AmountDue:         roundMoney(percentage / 100 * rc.TotalPaid),
		TierIndex:         tier,
		Percentage:        percentage,
		PenaltyPercentage: penalty,
		Explanation:       explanation,
	}
}

// weekBoundaries builds the six ordered boundaries [W0..W5]. W1 is the
// season start, W2..W5 follow weekly, off-dates are applied in ascending
// order, and W0 sits two weeks before the shifted W1.
func weekBoundaries(schedule *Schedule) [6]time.Time {
	weeks := make([]time.Time, 5)
	weeks[0] = schedule.SeasonStart
	for i := 1; i < 5; i++ {
		weeks[i] = weeks[i-1].AddDate(0, 0, 7)
	}

	// OffDates arrive sorted; the compounding shift requires ascending order.
	for _, off := range schedule.OffDates {
		for i, w := range weeks {
			if w.Equal(off) {
				for j := i; j < len(weeks); j++ {
					weeks[j] = weeks[j].AddDate(0, 0, 7)
				}
				break
			}
		}
	}

	var boundaries [6]time.Time
	boundaries[0] = weeks[0].AddDate(0, 0, -14)
	copy(boundaries[1:], weeks)
	return boundaries
}

func tierTiming(tier int) string {
	switch tier {
	case 0:
		return "more than 2 weeks before week 1 started"
	case 1:
		return "before week 1 started"
	default:
		return fmt.Sprintf("after the start of week %d", tier-1)
	}
}

func amountNoun(mode Mode) string {
	if mode == ModeCredit {
		return "credit"
	}
	return "refund"
}

// roundMoney rounds half away from zero to two decimals.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
