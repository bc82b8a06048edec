// Package model defines the core domain types for the claim rejection
// resolution pipeline.
package model

// RejectionRecord is a structured claim-status rejection notice as handed
// over by the ingestion layer. It is untrusted input and may carry PHI in
// any string field, including arbitrarily nested payer-specific content
// under Extra.
//
// TransactionID and RejectionCode are mandatory; every other field is
// optional and may be empty.
type RejectionRecord struct {
	TransactionID        string         `json:"transactionId"`
	PayerID              string         `json:"payerId,omitempty"`
	PayerName            string         `json:"payerName,omitempty"`
	MemberID             string         `json:"memberId,omitempty"`
	ClaimNumber          string         `json:"claimNumber,omitempty"`
	ProviderID           string         `json:"providerId,omitempty"`
	RejectionCode        string         `json:"rejectionCode"`
	RejectionDescription string         `json:"rejectionDescription,omitempty"`
	StatusCategory       string         `json:"statusCategory,omitempty"`
	ServiceDate          string         `json:"serviceDate,omitempty"`
	BilledAmount         float64        `json:"billedAmount,omitempty"`
	Extra                map[string]any `json:"extra,omitempty"`
}

// RedactedRecord has the same shape as RejectionRecord with every
// PHI-bearing value replaced by the redaction sentinel. RedactedPaths is
// the audit trail of field paths that were altered; it carries paths only,
// never the original values.
type RedactedRecord struct {
	TransactionID        string         `json:"transactionId"`
	PayerID              string         `json:"payerId,omitempty"`
	PayerName            string         `json:"payerName,omitempty"`
	MemberID             string         `json:"memberId,omitempty"`
	ClaimNumber          string         `json:"claimNumber,omitempty"`
	ProviderID           string         `json:"providerId,omitempty"`
	RejectionCode        string         `json:"rejectionCode"`
	RejectionDescription string         `json:"rejectionDescription,omitempty"`
	StatusCategory       string         `json:"statusCategory,omitempty"`
	ServiceDate          string         `json:"serviceDate,omitempty"`
	BilledAmount         float64        `json:"billedAmount,omitempty"`
	Extra                map[string]any `json:"extra,omitempty"`

	RedactedPaths []string `json:"redactedPaths,omitempty"`
}
