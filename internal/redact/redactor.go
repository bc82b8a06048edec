package redact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aurelianware/claimsentry/internal/model"
)

// Redactor produces a redacted deep copy of a rejection record. It never
// mutates its input, applies the name rule before the content rule, and
// recurses through nested maps and slices to unbounded depth. It is pure
// and safe for concurrent use.
type Redactor struct {
	patterns []Pattern
	names    []string
}

// NewRedactor creates a redactor with the registered pattern set and the
// default sensitive-name list.
func NewRedactor() *Redactor {
	return NewRedactorWith(DefaultPatterns(), SensitiveFieldNames())
}

// NewRedactorWith creates a redactor with explicit rules. Used by tests to
// skew the redactor's pattern set relative to the validator's.
func NewRedactorWith(patterns []Pattern, names []string) *Redactor {
	return &Redactor{patterns: patterns, names: names}
}

// Redact returns a redacted copy of the record plus the audit list of
// altered field paths. It is total: any syntactically valid record
// redacts without error.
func (r *Redactor) Redact(rec model.RejectionRecord) model.RedactedRecord {
	var paths []string

	redacted := model.RedactedRecord{
		TransactionID:        r.field("transactionId", rec.TransactionID, &paths),
		PayerID:              r.field("payerId", rec.PayerID, &paths),
		PayerName:            r.field("payerName", rec.PayerName, &paths),
		MemberID:             r.field("memberId", rec.MemberID, &paths),
		ClaimNumber:          r.field("claimNumber", rec.ClaimNumber, &paths),
		ProviderID:           r.field("providerId", rec.ProviderID, &paths),
		RejectionCode:        r.field("rejectionCode", rec.RejectionCode, &paths),
		RejectionDescription: r.field("rejectionDescription", rec.RejectionDescription, &paths),
		StatusCategory:       r.field("statusCategory", rec.StatusCategory, &paths),
		ServiceDate:          r.field("serviceDate", rec.ServiceDate, &paths),
		// Amounts cannot carry free-text PHI and pass through unchanged.
		BilledAmount: rec.BilledAmount,
	}

	if rec.Extra != nil {
		redacted.Extra = r.redactMap(rec.Extra, "extra", &paths)
	}

	sort.Strings(paths)
	redacted.RedactedPaths = paths

	return redacted
}

// field applies the name rule, then the content rule, to a named string field.
func (r *Redactor) field(name, value string, paths *[]string) string {
	if value == "" {
		return value
	}

	if r.nameSensitive(name) || r.contentSensitive(value) {
		*paths = append(*paths, name)
		return Sentinel
	}

	return value
}

// nameSensitive reports whether a field name matches the sensitive-name list.
func (r *Redactor) nameSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, sensitive := range r.names {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// contentSensitive reports whether a value matches any registered pattern.
func (r *Redactor) contentSensitive(value string) bool {
	for _, p := range r.patterns {
		if p.Matches(value) {
			return true
		}
	}
	return false
}

// redactMap deep-copies a nested map, redacting every string leaf.
func (r *Redactor) redactMap(m map[string]any, path string, paths *[]string) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = r.redactValue(key, value, path+"."+key, paths)
	}
	return out
}

// redactSlice deep-copies a slice, redacting every string leaf. Elements
// inherit the key of the enclosing field for the name rule.
func (r *Redactor) redactSlice(s []any, key, path string, paths *[]string) []any {
	out := make([]any, len(s))
	for i, value := range s {
		out[i] = r.redactValue(key, value, fmt.Sprintf("%s[%d]", path, i), paths)
	}
	return out
}

// redactValue dispatches on the dynamic type of a leaf or container.
// Unknown non-string types fail closed: they are replaced wholesale.
func (r *Redactor) redactValue(key string, value any, path string, paths *[]string) any {
	switch v := value.(type) {
	case string:
		if v == "" {
			return v
		}
		if r.nameSensitive(key) || r.contentSensitive(v) {
			*paths = append(*paths, path)
			return Sentinel
		}
		return v
	case map[string]any:
		return r.redactMap(v, path, paths)
	case []any:
		return r.redactSlice(v, key, path, paths)
	case nil, bool, float64, float32, int, int32, int64, uint, uint32, uint64:
		return v
	default:
		*paths = append(*paths, path)
		return Sentinel
	}
}
