package model

// ScenarioCategory classifies a claim rejection into one of ten fixed
// remediation scenarios. Classification is total: every rejection maps to
// exactly one category, with ScenarioGeneral as the catch-all.
type ScenarioCategory string

// The fixed scenario categories.
const (
	ScenarioMemberIDInvalid    ScenarioCategory = "member-id-invalid"
	ScenarioEligibilityIssue   ScenarioCategory = "eligibility-issue"
	ScenarioProviderCredential ScenarioCategory = "provider-credential-issue"
	ScenarioServiceNotCovered  ScenarioCategory = "service-not-covered"
	ScenarioPriorAuthRequired  ScenarioCategory = "prior-authorization-required"
	ScenarioDuplicateClaim     ScenarioCategory = "duplicate-claim"
	ScenarioTimelyFiling       ScenarioCategory = "timely-filing"
	ScenarioCodingError        ScenarioCategory = "coding-error"
	ScenarioMissingInformation ScenarioCategory = "missing-information"
	ScenarioGeneral            ScenarioCategory = "general"
)

// Scenarios returns all categories in their fixed evaluation order.
func Scenarios() []ScenarioCategory {
	return []ScenarioCategory{
		ScenarioMemberIDInvalid,
		ScenarioEligibilityIssue,
		ScenarioProviderCredential,
		ScenarioPriorAuthRequired,
		ScenarioServiceNotCovered,
		ScenarioDuplicateClaim,
		ScenarioTimelyFiling,
		ScenarioCodingError,
		ScenarioMissingInformation,
		ScenarioGeneral,
	}
}

func (s ScenarioCategory) String() string {
	return string(s)
}
