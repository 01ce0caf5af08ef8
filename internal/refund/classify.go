package refund

import (
	"fmt"
	"strings"
)

// RawResponse is the decoded body of an Admin API order query. The transport
// client hands it over as-is; classification never re-reads the wire.
type RawResponse struct {
	Errors     []ResponseError        `json:"errors,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// ResponseError is a single upstream error record, possibly carrying a
// nested diagnostics map under extensions.
type ResponseError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

type ResponseKind string

const (
	KindOK                  ResponseKind = "OK"
	KindNoContent           ResponseKind = "NO_CONTENT"
	KindNotFound            ResponseKind = "NOT_FOUND"
	KindForbidden           ResponseKind = "FORBIDDEN"
	KindBadRequest          ResponseKind = "BAD_REQUEST"
	KindNotAcceptable       ResponseKind = "NOT_ACCEPTABLE"
	KindUnprocessableEntity ResponseKind = "UNPROCESSABLE_ENTITY"
	KindMultiStatus         ResponseKind = "MULTI_STATUS"
	KindServerError         ResponseKind = "SERVER_ERROR"
	KindUnexpectedError     ResponseKind = "UNEXPECTED_ERROR"
)

// ClassifiedResponse is the classification outcome. Data is set for
// OK/MultiStatus, Message for everything else.
type ClassifiedResponse struct {
	Kind    ResponseKind           `json:"kind"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type classificationRule struct {
	kind  ResponseKind
	match func(*RawResponse) bool
	build func(*RawResponse) ClassifiedResponse
}

// classificationRules is evaluated top to bottom; the first match wins.
// The error-only checks come before MultiStatus, which only applies when
// errors and non-empty data co-occur. An empty data object counts as
// absent for the error-only rules.
var classificationRules = []classificationRule{
	{
		kind: KindForbidden,
		match: func(r *RawResponse) bool {
			return len(r.Errors) > 0 && len(r.Data) == 0 && hasErrorCode(r, "ACCESS_DENIED")
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{Kind: KindForbidden, Message: joinErrorMessages(r)}
		},
	},
	{
		kind: KindUnprocessableEntity,
		match: func(r *RawResponse) bool {
			return len(r.Errors) > 0 && len(r.Data) == 0 && hasFieldDiagnostics(r)
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{Kind: KindUnprocessableEntity, Message: fieldDiagnosticsMessage(r)}
		},
	},
	{
		kind: KindBadRequest,
		match: func(r *RawResponse) bool {
			return len(r.Errors) > 0 && len(r.Data) == 0
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{Kind: KindBadRequest, Message: joinErrorMessages(r)}
		},
	},
	{
		kind: KindMultiStatus,
		match: func(r *RawResponse) bool {
			return len(r.Errors) > 0 && hasValues(r.Data)
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{
				Kind:    KindMultiStatus,
				Data:    r.Data,
				Message: fmt.Sprintf("partial data returned alongside %d error(s): %s", len(r.Errors), joinErrorMessages(r)),
			}
		},
	},
	{
		kind: KindNotAcceptable,
		match: func(r *RawResponse) bool {
			return r.Data != nil && !hasValues(r.Data) && hasSearchWarnings(r)
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{Kind: KindNotAcceptable, Message: strings.Join(searchWarnings(r), "; ")}
		},
	},
	{
		kind: KindNoContent,
		match: func(r *RawResponse) bool {
			return r.Data != nil && !hasValues(r.Data)
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{Kind: KindNoContent, Message: "the query matched no records"}
		},
	},
	{
		kind: KindOK,
		match: func(r *RawResponse) bool {
			return r.Data != nil && hasValues(r.Data)
		},
		build: func(r *RawResponse) ClassifiedResponse {
			return ClassifiedResponse{Kind: KindOK, Data: r.Data}
		},
	},
}

// Classify maps a raw query response onto exactly one response kind. It is
// total: a shape no rule recognizes degrades to UnexpectedError instead of
// propagating a fault.
func Classify(raw *RawResponse) ClassifiedResponse {
	if raw == nil {
		return ClassifiedResponse{Kind: KindUnexpectedError, Message: "no response was received"}
	}
	for _, rule := range classificationRules {
		if rule.match(raw) {
			return rule.build(raw)
		}
	}
	return ClassifiedResponse{Kind: KindUnexpectedError, Message: "the response shape was not recognized"}
}

// FromTransportStatus builds a classification for responses that never made
// it to a decodable body. Only the transport layer calls this.
func FromTransportStatus(status int, message string) ClassifiedResponse {
	switch {
	case status == 404:
		return ClassifiedResponse{Kind: KindNotFound, Message: message}
	case status >= 500:
		return ClassifiedResponse{Kind: KindServerError, Message: message}
	default:
		return ClassifiedResponse{Kind: KindUnexpectedError, Message: message}
	}
}

// hasValues reports whether a decoded JSON value contains at least one
// non-empty scalar anywhere. Empty strings and nulls never count; containers
// count only if some member does.
func hasValues(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case map[string]interface{}:
		for _, member := range val {
			if hasValues(member) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, member := range val {
			if hasValues(member) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func hasErrorCode(r *RawResponse, code string) bool {
	for _, e := range r.Errors {
		if c, ok := e.Extensions["code"].(string); ok && c == code {
			return true
		}
	}
	return false
}

// hasFieldDiagnostics reports whether some error carries the full
// code/typeName/fieldName triple that marks a query-validation failure.
func hasFieldDiagnostics(r *RawResponse) bool {
	for _, e := range r.Errors {
		if e.Extensions == nil {
			continue
		}
		_, hasCode := e.Extensions["code"]
		_, hasType := e.Extensions["typeName"]
		_, hasField := e.Extensions["fieldName"]
		if hasCode && hasType && hasField {
			return true
		}
	}
	return false
}

func fieldDiagnosticsMessage(r *RawResponse) string {
	var parts []string
	for _, e := range r.Errors {
		if e.Extensions == nil {
			continue
		}
		code, hasCode := e.Extensions["code"]
		typeName, hasType := e.Extensions["typeName"]
		fieldName, hasField := e.Extensions["fieldName"]
		if hasCode && hasType && hasField {
			parts = append(parts, fmt.Sprintf("%v on %v.%v: %s", code, typeName, fieldName, e.Message))
		}
	}
	if len(parts) == 0 {
		return joinErrorMessages(r)
	}
	return strings.Join(parts, "; ")
}

func joinErrorMessages(r *RawResponse) string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// hasSearchWarnings reports whether extensions.search has at least one entry
// carrying a warnings key.
func hasSearchWarnings(r *RawResponse) bool {
	if r.Extensions == nil {
		return false
	}
	entries, ok := r.Extensions["search"].([]interface{})
	if !ok {
		return false
	}
	for _, entry := range entries {
		if m, ok := entry.(map[string]interface{}); ok {
			if _, ok := m["warnings"]; ok {
				return true
			}
		}
	}
	return false
}

// searchWarnings collects the per-field warning texts Shopify reports under
// extensions.search when a query argument could not be interpreted.
func searchWarnings(r *RawResponse) []string {
	if r.Extensions == nil {
		return nil
	}
	entries, ok := r.Extensions["search"].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		warnings, ok := m["warnings"].([]interface{})
		if !ok {
			continue
		}
		for _, w := range warnings {
			wm, ok := w.(map[string]interface{})
			if !ok {
				continue
			}
			field, _ := wm["field"].(string)
			message, _ := wm["message"].(string)
			switch {
			case field != "" && message != "":
				out = append(out, fmt.Sprintf("%s: %s", field, message))
			case message != "":
				out = append(out, message)
			}
		}
	}
	return out
}
