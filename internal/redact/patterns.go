// Package redact removes PHI from rejection records and independently
// verifies that removal before anything leaves the trust boundary.
package redact

import "regexp"

// Sentinel is the fixed, non-reversible replacement for redacted values.
const Sentinel = "[REDACTED]"

// Pattern is a named content rule. Any string value matching the pattern
// is PHI-bearing and must be replaced with the sentinel.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// Matches reports whether the value contains PHI-like content per this pattern.
func (p Pattern) Matches(value string) bool {
	return p.re.MatchString(value)
}

// NewPattern compiles a named content pattern. It panics on an invalid
// expression; the registered set is fixed at build time.
func NewPattern(name, expr string) Pattern {
	return Pattern{Name: name, re: regexp.MustCompile(expr)}
}

// DefaultPatterns returns the registered content-based PHI pattern set.
// The redactor and the validator both consume this registry, but each
// applies it through its own traversal.
func DefaultPatterns() []Pattern {
	return []Pattern{
		NewPattern("ssn", `\b\d{3}-\d{2}-\d{4}\b`),
		NewPattern("email", `\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
		NewPattern("phone", `(\(\d{3}\)[ .-]?|\b\d{3}[ .-])\d{3}[ .-]\d{4}\b`),
		NewPattern("date", `\b(0?[1-9]|1[0-2])/(0?[1-9]|[12]\d|3[01])/\d{4}\b`),
		NewPattern("card", `\b\d(?:[ -]?\d){12,15}\b`),
		NewPattern("account", `\b\d{8,12}\b`),
		NewPattern("ip", `\b(\d{1,3}\.){3}\d{1,3}\b`),
		NewPattern("url", `\bhttps?://\S+`),
	}
}

// SensitiveFieldNames returns the name-based rule list. A field whose
// lowercased name contains any of these substrings is redacted
// unconditionally, regardless of its content.
func SensitiveFieldNames() []string {
	return []string{
		"memberid",
		"member_id",
		"subscriberid",
		"subscriber_id",
		"ssn",
		"socialsecurity",
		"social_security",
		"patientname",
		"patient_name",
		"firstname",
		"first_name",
		"lastname",
		"last_name",
		"dateofbirth",
		"date_of_birth",
		"dob",
		"birthdate",
		"email",
		"phone",
		"fax",
		"address",
		"accountnumber",
		"account_number",
		"claimnumber",
		"claim_number",
		"licensenumber",
		"license_number",
		"beneficiary",
	}
}
