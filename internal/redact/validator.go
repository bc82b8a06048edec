package redact

import (
	"fmt"

	"github.com/aurelianware/claimsentry/internal/model"
)

// Validator independently re-scans an already-redacted record for residual
// PHI-like content. It re-applies the content pattern set through its own
// traversal and never trusts the redactor's audit trail. A failed verdict
// must abort the pipeline before any remote dispatch.
type Validator struct {
	patterns []Pattern
}

// NewValidator creates a validator with the registered pattern set.
func NewValidator() *Validator {
	return NewValidatorWith(DefaultPatterns())
}

// NewValidatorWith creates a validator with an explicit pattern set.
func NewValidatorWith(patterns []Pattern) *Validator {
	return &Validator{patterns: patterns}
}

// Validate scans every string leaf of the redacted record and reports any
// residual pattern match as a violation. Violations carry field paths and
// pattern names only, never values.
func (v *Validator) Validate(rec model.RedactedRecord) model.RedactionVerdict {
	var violations []model.Violation

	check := func(path, value string) {
		if value == "" || value == Sentinel {
			return
		}
		for _, p := range v.patterns {
			if p.Matches(value) {
				violations = append(violations, model.Violation{FieldPath: path, Pattern: p.Name})
				return
			}
		}
	}

	check("transactionId", rec.TransactionID)
	check("payerId", rec.PayerID)
	check("payerName", rec.PayerName)
	check("memberId", rec.MemberID)
	check("claimNumber", rec.ClaimNumber)
	check("providerId", rec.ProviderID)
	check("rejectionCode", rec.RejectionCode)
	check("rejectionDescription", rec.RejectionDescription)
	check("statusCategory", rec.StatusCategory)
	check("serviceDate", rec.ServiceDate)

	violations = append(violations, v.scanValue(rec.Extra, "extra")...)

	return model.RedactionVerdict{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

// scanValue recursively scans nested containers for string leaves.
func (v *Validator) scanValue(value any, path string) []model.Violation {
	switch val := value.(type) {
	case string:
		if val == "" || val == Sentinel {
			return nil
		}
		for _, p := range v.patterns {
			if p.Matches(val) {
				return []model.Violation{{FieldPath: path, Pattern: p.Name}}
			}
		}
		return nil
	case map[string]any:
		var out []model.Violation
		for key, nested := range val {
			out = append(out, v.scanValue(nested, path+"."+key)...)
		}
		return out
	case []any:
		var out []model.Violation
		for i, nested := range val {
			out = append(out, v.scanValue(nested, fmt.Sprintf("%s[%d]", path, i))...)
		}
		return out
	default:
		return nil
	}
}
