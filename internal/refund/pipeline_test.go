package refund

import (
	"testing"
	"time"
)

func orderResponse() *RawResponse {
	return &RawResponse{
		Data: map[string]interface{}{
			"orders": map[string]interface{}{
				"edges": []interface{}{
					map[string]interface{}{
						"node": map[string]interface{}{
							"id":    "gid://shopify/Order/1",
							"name":  "#43262",
							"email": "a@b.com",
						},
					},
				},
			},
		},
	}
}

func TestDecideComputesRefund(t *testing.T) {
	out := Decide(orderResponse(), "Season Dates: 9/20/25 – 11/15/25 (8 weeks)", RefundContext{
		TotalPaid:   145.00,
		Mode:        ModeRefund,
		SubmittedAt: date(2025, time.September, 1),
	})

	if out.Response.Kind != KindOK {
		t.Fatalf("expected OK, got %s", out.Response.Kind)
	}
	if out.Decision == nil {
		t.Fatal("expected a decision for an OK response")
	}
	if out.Decision.AmountDue != 137.75 {
		t.Fatalf("expected 137.75, got %v", out.Decision.AmountDue)
	}
	if out.Decision.IsFallback {
		t.Fatal("schedule was present, decision must not be a fallback")
	}
}

func TestDecideSkipsNonOK(t *testing.T) {
	raws := []*RawResponse{
		nil,
		{Errors: []ResponseError{{Message: "syntax error, unexpected LPAREN"}}},
		{Data: map[string]interface{}{"orders": map[string]interface{}{"edges": []interface{}{}}}},
	}

	for i, raw := range raws {
		out := Decide(raw, "Season Dates: 9/20/25 – 11/15/25", RefundContext{
			TotalPaid:   145,
			Mode:        ModeRefund,
			SubmittedAt: date(2025, time.September, 1),
		})
		if out.Response.Kind == KindOK {
			t.Fatalf("input %d: expected a non-OK classification", i)
		}
		if out.Decision != nil {
			t.Fatalf("input %d: no decision may be computed for %s", i, out.Response.Kind)
		}
	}
}

func TestDecideFallbackRefund(t *testing.T) {
	out := Decide(orderResponse(), "TBD", RefundContext{
		TotalPaid:   145.00,
		Mode:        ModeRefund,
		SubmittedAt: date(2025, time.September, 1),
	})

	if out.Decision == nil {
		t.Fatal("expected a fallback decision")
	}
	if !out.Decision.IsFallback {
		t.Fatal("expected IsFallback to be set")
	}
	if out.Decision.Percentage != 90 {
		t.Fatalf("expected flat 90%%, got %v%%", out.Decision.Percentage)
	}
	if out.Decision.AmountDue != 130.50 {
		t.Fatalf("expected 130.50, got %v", out.Decision.AmountDue)
	}
	if out.Decision.TierIndex != TierNone {
		t.Fatalf("fallback must not carry a tier, got %d", out.Decision.TierIndex)
	}
}

func TestDecideFallbackCredit(t *testing.T) {
	out := Decide(orderResponse(), "details coming soon", RefundContext{
		TotalPaid:   100,
		Mode:        ModeCredit,
		SubmittedAt: date(2025, time.September, 1),
	})

	if out.Decision == nil || !out.Decision.IsFallback {
		t.Fatal("expected a fallback decision")
	}
	if out.Decision.Percentage != 95 {
		t.Fatalf("expected flat 95%%, got %v%%", out.Decision.Percentage)
	}
	if out.Decision.AmountDue != 95 {
		t.Fatalf("expected 95, got %v", out.Decision.AmountDue)
	}
}
