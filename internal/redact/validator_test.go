package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelianware/claimsentry/internal/model"
)

func TestValidateCleanRecord(t *testing.T) {
	v := NewValidator()

	verdict := v.Validate(model.RedactedRecord{
		TransactionID:        "tx-1",
		RejectionCode:        "ZZZ",
		RejectionDescription: "Unrecognized rejection",
		MemberID:             Sentinel,
	})

	assert.True(t, verdict.Valid)
	assert.Empty(t, verdict.Violations)
}

func TestValidateFindsResidualContent(t *testing.T) {
	v := NewValidator()

	verdict := v.Validate(model.RedactedRecord{
		TransactionID:        "tx-1",
		RejectionCode:        "ZZZ",
		RejectionDescription: "ssn 123-45-6789 slipped through",
		Extra: map[string]any{
			"contact": map[string]any{"value": "jane@example.com"},
		},
	})

	require.False(t, verdict.Valid)
	require.Len(t, verdict.Violations, 2)

	found := make(map[string]string)
	for _, violation := range verdict.Violations {
		found[violation.FieldPath] = violation.Pattern
	}
	assert.Equal(t, "ssn", found["rejectionDescription"])
	assert.Equal(t, "email", found["extra.contact.value"])
}

func TestValidateReportsNamesNotValues(t *testing.T) {
	v := NewValidator()

	verdict := v.Validate(model.RedactedRecord{
		TransactionID: "tx-1",
		RejectionCode: "ZZZ",
		Extra:         map[string]any{"leak": "123-45-6789"},
	})

	require.False(t, verdict.Valid)
	for _, violation := range verdict.Violations {
		assert.NotContains(t, violation.FieldPath, "123-45-6789")
		assert.NotContains(t, violation.Pattern, "123-45-6789")
	}
}

// Redaction soundness: validating any redacted record succeeds when the
// redactor and validator share the registered pattern set.
func TestRedactionSoundness(t *testing.T) {
	r := NewRedactor()
	v := NewValidator()

	records := []model.RejectionRecord{
		{
			TransactionID: "tx-1",
			RejectionCode: "ID001",
			MemberID:      "123-45-6789",
		},
		{
			TransactionID:        "tx-2",
			RejectionCode:        "EL002",
			RejectionDescription: "Member jane.doe@example.com not eligible, call 555-123-4567",
			ServiceDate:          "03/15/2024",
		},
		{
			TransactionID: "tx-3",
			RejectionCode: "ZZZ",
			Extra: map[string]any{
				"audit": []any{
					map[string]any{"ip": "10.0.0.1", "url": "https://portal.example.com"},
					"card 4111-1111-1111-1111",
				},
				"depth": map[string]any{
					"more": map[string]any{"dob": "01/02/1990", "account": "987654321"},
				},
			},
		},
		{
			TransactionID: "tx-4",
			RejectionCode: "CO045",
			BilledAmount:  250.75,
		},
	}

	for _, rec := range records {
		verdict := v.Validate(r.Redact(rec))
		assert.True(t, verdict.Valid, "record %s failed soundness: %+v", rec.TransactionID, verdict.Violations)
	}
}

// Skewing the redactor's pattern set below the validator's must produce a
// failing verdict: this is the fail-closed path the pipeline depends on.
func TestValidateCatchesWeakenedRedactor(t *testing.T) {
	var weakened []Pattern
	for _, p := range DefaultPatterns() {
		if p.Name != "ssn" {
			weakened = append(weakened, p)
		}
	}

	r := NewRedactorWith(weakened, SensitiveFieldNames())
	v := NewValidator()

	rec := model.RejectionRecord{
		TransactionID: "tx-1",
		RejectionCode: "ZZZ",
		Extra:         map[string]any{"note": "ssn 123-45-6789 on record"},
	}

	verdict := v.Validate(r.Redact(rec))
	require.False(t, verdict.Valid)
	require.Len(t, verdict.Violations, 1)
	assert.Equal(t, "extra.note", verdict.Violations[0].FieldPath)
	assert.Equal(t, "ssn", verdict.Violations[0].Pattern)
}
