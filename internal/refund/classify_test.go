package refund

import (
	"testing"
)

func TestClassifyAccessDenied(t *testing.T) {
	raw := &RawResponse{
		Errors: []ResponseError{
			{
				Message:    "Access denied for orders field.",
				Extensions: map[string]interface{}{"code": "ACCESS_DENIED"},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindForbidden {
		t.Fatalf("expected FORBIDDEN, got %s", resp.Kind)
	}
	if resp.Message != "Access denied for orders field." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.Data != nil {
		t.Fatal("expected no data on a forbidden response")
	}
}

func TestClassifySyntaxError(t *testing.T) {
	raw := &RawResponse{
		Errors: []ResponseError{
			{Message: "syntax error, unexpected LPAREN"},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %s", resp.Kind)
	}
	if resp.Message != "syntax error, unexpected LPAREN" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestClassifyFieldDiagnostics(t *testing.T) {
	raw := &RawResponse{
		Errors: []ResponseError{
			{
				Message: "Order doesn't exist",
				Extensions: map[string]interface{}{
					"code":      "ARGUMENT_VALIDATION",
					"typeName":  "QueryRoot",
					"fieldName": "order",
				},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindUnprocessableEntity {
		t.Fatalf("expected UNPROCESSABLE_ENTITY, got %s", resp.Kind)
	}
	if resp.Message == "" {
		t.Fatal("expected a diagnostics message")
	}
}

func TestClassifySearchWarnings(t *testing.T) {
	raw := &RawResponse{
		Data: map[string]interface{}{
			"orders": map[string]interface{}{
				"edges": []interface{}{},
			},
		},
		Extensions: map[string]interface{}{
			"search": []interface{}{
				map[string]interface{}{
					"query": "id:gid://shopify/Order/234234234",
					"warnings": []interface{}{
						map[string]interface{}{
							"field":   "id",
							"message": "Expected field to be a positive integer or UUID, received `gid`.",
						},
					},
				},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindNotAcceptable {
		t.Fatalf("expected NOT_ACCEPTABLE, got %s", resp.Kind)
	}
	if resp.Message != "id: Expected field to be a positive integer or UUID, received `gid`." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestClassifyEmptyEdges(t *testing.T) {
	raw := &RawResponse{
		Data: map[string]interface{}{
			"orders": map[string]interface{}{
				"edges": []interface{}{},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindNoContent {
		t.Fatalf("expected NO_CONTENT, got %s", resp.Kind)
	}
}

func TestClassifyOrderFound(t *testing.T) {
	raw := &RawResponse{
		Data: map[string]interface{}{
			"orders": map[string]interface{}{
				"edges": []interface{}{
					map[string]interface{}{
						"node": map[string]interface{}{
							"id":    "X",
							"name":  "#43262",
							"email": "a@b.com",
						},
					},
				},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindOK {
		t.Fatalf("expected OK, got %s", resp.Kind)
	}
	if resp.Data == nil {
		t.Fatal("expected data to be carried through")
	}
}

func TestClassifyMultiStatus(t *testing.T) {
	raw := &RawResponse{
		Errors: []ResponseError{
			{Message: "Field 'note' is restricted"},
		},
		Data: map[string]interface{}{
			"orders": map[string]interface{}{
				"edges": []interface{}{
					map[string]interface{}{
						"node": map[string]interface{}{"name": "#43262"},
					},
				},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindMultiStatus {
		t.Fatalf("expected MULTI_STATUS, got %s", resp.Kind)
	}
	if resp.Data == nil {
		t.Fatal("expected partial data to be carried")
	}
	if resp.Message == "" {
		t.Fatal("expected the errors to be reported")
	}
}

// Errors alongside a keyed data object with no actual values must not
// classify as MultiStatus; the error-only rules don't apply either since
// data has fields, so the empty-data branches win.
func TestClassifyErrorsWithEmptyData(t *testing.T) {
	raw := &RawResponse{
		Errors: []ResponseError{{Message: "throttled"}},
		Data: map[string]interface{}{
			"orders": nil,
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindNoContent {
		t.Fatalf("expected NO_CONTENT, got %s", resp.Kind)
	}
}

// An empty data object alongside errors reads the same as no data at all,
// so the error-only rules win over the empty-data branches.
func TestClassifyErrorsWithEmptyDataObject(t *testing.T) {
	resp := Classify(&RawResponse{
		Errors: []ResponseError{{Message: "throttled"}},
		Data:   map[string]interface{}{},
	})
	if resp.Kind != KindBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %s", resp.Kind)
	}
	if resp.Message != "throttled" {
		t.Fatalf("expected the error message to be carried, got %q", resp.Message)
	}

	resp = Classify(&RawResponse{
		Errors: []ResponseError{
			{
				Message:    "Access denied for orders field.",
				Extensions: map[string]interface{}{"code": "ACCESS_DENIED"},
			},
		},
		Data: map[string]interface{}{},
	})
	if resp.Kind != KindForbidden {
		t.Fatalf("expected FORBIDDEN, got %s", resp.Kind)
	}
}

// Access-denied precedence only applies when data is absent or empty.
func TestClassifyAccessDeniedBeatsFieldDiagnostics(t *testing.T) {
	raw := &RawResponse{
		Errors: []ResponseError{
			{
				Message: "Access denied for orders field.",
				Extensions: map[string]interface{}{
					"code":      "ACCESS_DENIED",
					"typeName":  "QueryRoot",
					"fieldName": "orders",
				},
			},
		},
	}

	resp := Classify(raw)
	if resp.Kind != KindForbidden {
		t.Fatalf("expected FORBIDDEN to win, got %s", resp.Kind)
	}
}

func TestClassifyDeepEmptyTrees(t *testing.T) {
	cases := []struct {
		name string
		data map[string]interface{}
	}{
		{"empty map", map[string]interface{}{}},
		{"nulls only", map[string]interface{}{"a": nil, "b": nil}},
		{"empty strings", map[string]interface{}{"a": "", "b": map[string]interface{}{"c": ""}}},
		{
			"deep nesting",
			map[string]interface{}{
				"a": []interface{}{
					map[string]interface{}{
						"b": []interface{}{
							map[string]interface{}{"c": "", "d": nil},
						},
					},
					[]interface{}{},
				},
			},
		},
	}

	for _, tc := range cases {
		resp := Classify(&RawResponse{Data: tc.data})
		if resp.Kind == KindOK {
			t.Fatalf("%s: a tree with no values must never classify OK, got %s", tc.name, resp.Kind)
		}
		if resp.Kind != KindNoContent {
			t.Fatalf("%s: expected NO_CONTENT, got %s", tc.name, resp.Kind)
		}
	}
}

func TestClassifyScalarCounts(t *testing.T) {
	cases := []struct {
		name string
		data map[string]interface{}
	}{
		{"number", map[string]interface{}{"n": float64(0)}},
		{"bool", map[string]interface{}{"b": false}},
		{"nested string", map[string]interface{}{"a": []interface{}{map[string]interface{}{"s": "x"}}}},
	}

	for _, tc := range cases {
		resp := Classify(&RawResponse{Data: tc.data})
		if resp.Kind != KindOK {
			t.Fatalf("%s: expected OK, got %s", tc.name, resp.Kind)
		}
	}
}

func TestClassifyTotality(t *testing.T) {
	inputs := []*RawResponse{
		nil,
		{},
		{Extensions: map[string]interface{}{"search": "not-a-list"}},
		{Errors: []ResponseError{{}}},
		{Data: map[string]interface{}{"x": map[string]interface{}{}}, Errors: []ResponseError{{Message: "e"}}},
	}

	for i, raw := range inputs {
		first := Classify(raw)
		second := Classify(raw)
		if first.Kind == "" {
			t.Fatalf("input %d: classification produced no kind", i)
		}
		if first.Kind != second.Kind || first.Message != second.Message {
			t.Fatalf("input %d: classification not deterministic", i)
		}
	}
}

// The rule table is ordered; error-only kinds come first, MultiStatus sits
// ahead of the plain data branches.
func TestClassificationRuleOrder(t *testing.T) {
	want := []ResponseKind{
		KindForbidden,
		KindUnprocessableEntity,
		KindBadRequest,
		KindMultiStatus,
		KindNotAcceptable,
		KindNoContent,
		KindOK,
	}

	if len(classificationRules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(classificationRules))
	}
	for i, rule := range classificationRules {
		if rule.kind != want[i] {
			t.Fatalf("rule %d: expected %s, got %s", i, want[i], rule.kind)
		}
	}
}

func TestClassifyNilResponse(t *testing.T) {
	resp := Classify(nil)
	if resp.Kind != KindUnexpectedError {
		t.Fatalf("expected UNEXPECTED_ERROR, got %s", resp.Kind)
	}
}

func TestClassifyEmptyResponse(t *testing.T) {
	resp := Classify(&RawResponse{})
	if resp.Kind != KindUnexpectedError {
		t.Fatalf("expected UNEXPECTED_ERROR for a body with neither data nor errors, got %s", resp.Kind)
	}
}

func TestFromTransportStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ResponseKind
	}{
		{404, KindNotFound},
		{500, KindServerError},
		{502, KindServerError},
		{503, KindServerError},
		{418, KindUnexpectedError},
	}

	for _, tc := range cases {
		got := FromTransportStatus(tc.status, "upstream failure")
		if got.Kind != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, got.Kind)
		}
		if got.Message != "upstream failure" {
			t.Fatalf("status %d: message not carried", tc.status)
		}
	}
}
