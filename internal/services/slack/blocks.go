package slack

import (
	"fmt"

	"leagueops/internal/refund"
)

const (
	ActionApproveRefund = "approve_refund"
	ActionDenyRefund    = "deny_refund"
)

// RefundApprovalInput carries everything the approval message shows.
type RefundApprovalInput struct {
	RequestID    string
	OrderName    string
	CustomerMail string
	ProductTitle string
	Mode         refund.Mode
	TotalPaid    float64
	Decision     refund.RefundDecision
}

// BuildRefundApproval renders the approve/deny message for a computed
// refund decision. The button values carry the request ID so the
// interaction callback can resolve the right record.
func BuildRefundApproval(in RefundApprovalInput) *Message {
	noun := "Refund"
	if in.Mode == refund.ModeCredit {
		noun = "Store credit"
	}

	headline := fmt.Sprintf("%s request for order %s", noun, in.OrderName)

	fields := []Text{
		{Type: "mrkdwn", Text: fmt.Sprintf("*Order:*\n%s", in.OrderName)},
		{Type: "mrkdwn", Text: fmt.Sprintf("*Customer:*\n%s", in.CustomerMail)},
		{Type: "mrkdwn", Text: fmt.Sprintf("*Product:*\n%s", in.ProductTitle)},
		{Type: "mrkdwn", Text: fmt.Sprintf("*Paid:*\n$%.2f", in.TotalPaid)},
		{Type: "mrkdwn", Text: fmt.Sprintf("*Amount due:*\n$%.2f (%.0f%%)", in.Decision.AmountDue, in.Decision.Percentage)},
	}
	if in.Decision.IsFallback {
		fields = append(fields, Text{Type: "mrkdwn", Text: "*Policy:*\nflat fallback (no schedule found)"})
	} else if in.Decision.TierIndex != refund.TierNone {
		fields = append(fields, Text{Type: "mrkdwn", Text: fmt.Sprintf("*Tier:*\n%d", in.Decision.TierIndex)})
	}

	return &Message{
		Text: headline,
		Blocks: []Block{
			{
				Type: "header",
				Text: &Text{Type: "plain_text", Text: headline},
			},
			{
				Type:   "section",
				Fields: fields,
			},
			{
				Type: "section",
				Text: &Text{Type: "mrkdwn", Text: in.Decision.Explanation},
			},
			{
				Type: "actions",
				Elements: []Element{
					{
						Type:     "button",
						Text:     &Text{Type: "plain_text", Text: "Approve"},
						Style:    "primary",
						ActionID: ActionApproveRefund,
						Value:    in.RequestID,
					},
					{
						Type:     "button",
						Text:     &Text{Type: "plain_text", Text: "Deny"},
						Style:    "danger",
						ActionID: ActionDenyRefund,
						Value:    in.RequestID,
					},
				},
			},
		},
	}
}

// BuildRefundResolved renders the confirmation posted once a reviewer
// resolves a request.
func BuildRefundResolved(orderName, status string, amountDue float64) *Message {
	text := fmt.Sprintf("Refund request for order %s was %s ($%.2f)", orderName, status, amountDue)
	return &Message{
		Text: text,
		Blocks: []Block{
			{
				Type: "section",
				Text: &Text{Type: "mrkdwn", Text: text},
			},
		},
	}
}
