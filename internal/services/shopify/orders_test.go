package shopify

import (
	"testing"
)

func orderData() map[string]interface{} {
	return map[string]interface{}{
		"orders": map[string]interface{}{
			"edges": []interface{}{
				map[string]interface{}{
					"node": map[string]interface{}{
						"id":    "gid://shopify/Order/450789469",
						"name":  "#43262",
						"email": "player@example.com",
						"totalPriceSet": map[string]interface{}{
							"shopMoney": map[string]interface{}{
								"amount": "145.00",
							},
						},
						"lineItems": map[string]interface{}{
							"edges": []interface{}{
								map[string]interface{}{
									"node": map[string]interface{}{
										"title": "Coed Kickball - Fall 2025",
										"product": map[string]interface{}{
											"descriptionHtml": "<p>Season Dates: 9/20/25 – 11/15/25 (8 weeks)</p>",
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestExtractOrderSummary(t *testing.T) {
	summary, err := ExtractOrderSummary(orderData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ID != "gid://shopify/Order/450789469" {
		t.Fatalf("unexpected id: %s", summary.ID)
	}
	if summary.Name != "#43262" {
		t.Fatalf("unexpected name: %s", summary.Name)
	}
	if summary.Email != "player@example.com" {
		t.Fatalf("unexpected email: %s", summary.Email)
	}
	if summary.TotalPrice != 145.00 {
		t.Fatalf("unexpected total: %v", summary.TotalPrice)
	}
	if summary.ProductTitle != "Coed Kickball - Fall 2025" {
		t.Fatalf("unexpected product title: %s", summary.ProductTitle)
	}
	if summary.ProductDescription == "" {
		t.Fatal("expected the product description to be extracted")
	}
}

func TestExtractOrderSummaryMissingLineItems(t *testing.T) {
	data := map[string]interface{}{
		"orders": map[string]interface{}{
			"edges": []interface{}{
				map[string]interface{}{
					"node": map[string]interface{}{
						"id":   "gid://shopify/Order/1",
						"name": "#1",
					},
				},
			},
		},
	}

	summary, err := ExtractOrderSummary(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ProductDescription != "" {
		t.Fatal("expected empty description when line items are missing")
	}
}

func TestExtractOrderSummaryNoEdges(t *testing.T) {
	data := map[string]interface{}{
		"orders": map[string]interface{}{
			"edges": []interface{}{},
		},
	}

	if _, err := ExtractOrderSummary(data); err == nil {
		t.Fatal("expected an error for an empty connection")
	}
}

func TestExtractOrderSummaryMalformed(t *testing.T) {
	for i, data := range []map[string]interface{}{
		nil,
		{},
		{"orders": "not-a-map"},
		{"orders": map[string]interface{}{"edges": []interface{}{"not-a-map"}}},
	} {
		if _, err := ExtractOrderSummary(data); err == nil {
			t.Fatalf("input %d: expected an error", i)
		}
	}
}
