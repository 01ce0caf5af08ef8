package refund

import "fmt"

// Fallback percentages applied when no season schedule can be parsed.
const (
	fallbackRefundPercentage = 90
	fallbackCreditPercentage = 95
)

// Outcome pairs the response classification with the refund decision.
// Decision is nil whenever the classification is anything but OK.
type Outcome struct {
	Response ClassifiedResponse `json:"response"`
	Decision *RefundDecision    `json:"decision,omitempty"`
}

// Decide runs the whole pipeline: classify the raw order query response,
// and for an OK result compute the refund from the product description.
// A description without a parsable schedule falls back to a flat percentage.
func Decide(raw *RawResponse, description string, rc RefundContext) Outcome {
	classified := Classify(raw)
	if classified.Kind != KindOK {
		return Outcome{Response: classified}
	}

	schedule, err := ExtractSchedule(description)
	if err != nil {
		decision := fallbackDecision(rc)
		return Outcome{Response: classified, Decision: &decision}
	}

	decision := Calculate(schedule, rc)
	return Outcome{Response: classified, Decision: &decision}
}

func fallbackDecision(rc RefundContext) RefundDecision {
	percentage := float64(fallbackRefundPercentage)
	noun := "refund"
	if rc.Mode == ModeCredit {
		percentage = fallbackCreditPercentage
		noun = "credit"
	}

	return RefundDecision{
		AmountDue:  roundMoney(percentage / 100 * rc.TotalPaid),
		TierIndex:  TierNone,
		Percentage: percentage,
		Explanation: fmt.Sprintf(
			"no season schedule found in the product description: flat %.0f%% %s applied", percentage, noun),
		IsFallback: true,
	}
}
