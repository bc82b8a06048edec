package model

// Violation identifies residual PHI-like content found after redaction.
// It names the field path and the pattern that matched, never the value.
type Violation struct {
	FieldPath string `json:"fieldPath"`
	Pattern   string `json:"pattern"`
}

// RedactionVerdict is the result of independently re-scanning an
// already-redacted record. It is produced without trusting the redactor's
// own audit trail.
type RedactionVerdict struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}
