package provider

import (
	"context"

	"github.com/aurelianware/claimsentry/internal/model"
)

// SimulatedProvider returns deterministic, locally curated suggestions per
// scenario. It performs no I/O and is used whenever simulated mode is
// selected or remote configuration is deliberately absent.
type SimulatedProvider struct {
	table map[model.ScenarioCategory]Suggestion
}

// NewSimulatedProvider creates the local provider with the curated table.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{table: simulatedTable()}
}

// Suggest looks up the curated suggestions for a scenario. It never fails
// and never touches the record beyond the scenario tag.
func (p *SimulatedProvider) Suggest(_ context.Context, scenario model.ScenarioCategory, _ model.RedactedRecord) (Suggestion, error) {
	if s, ok := p.table[scenario]; ok {
		return s, nil
	}
	return p.table[model.ScenarioGeneral], nil
}

func simulatedTable() map[model.ScenarioCategory]Suggestion {
	table := map[model.ScenarioCategory][]string{
		model.ScenarioMemberIDInvalid: {
			"Verify the member ID against the patient's current insurance card",
			"Confirm the payer-specific member ID format, including alpha prefixes and suffixes",
			"Run a real-time eligibility inquiry to retrieve the payer's member ID on file",
			"Resubmit the claim with the corrected member ID",
		},
		model.ScenarioEligibilityIssue: {
			"Run an eligibility inquiry for the date of service to confirm active coverage",
			"Check whether the member has replacement or secondary coverage for the service date",
			"Contact the member to confirm current insurance information",
			"If coverage was active, dispute the rejection with the payer's eligibility department",
		},
		model.ScenarioProviderCredential: {
			"Verify the rendering and billing NPIs registered with the payer",
			"Confirm the provider's enrollment and credentialing status for this plan",
			"Check that the taxonomy code on the claim matches the payer's enrollment record",
			"Resubmit once the payer confirms the provider record is corrected",
		},
		model.ScenarioServiceNotCovered: {
			"Review the member's benefit plan for exclusions covering this service",
			"Check for a payer-specific medical policy and documented coverage criteria",
			"Determine whether an alternative covered service or code applies",
			"If the member elected a non-covered service, confirm an advance notice form is on file",
			"Consider billing the member per the plan's non-covered service rules",
		},
		model.ScenarioPriorAuthRequired: {
			"Check the payer portal for an existing authorization covering the service date",
			"Request a retroactive authorization if the payer's policy allows one",
			"Attach the authorization number to the claim and resubmit",
			"Route future orders for this service through the prior-authorization workflow",
		},
		model.ScenarioDuplicateClaim: {
			"Locate the original claim and compare its status before any resubmission",
			"If the original claim paid, post the payment and close this submission",
			"If the original claim is still pending, allow the payer's adjudication to finish",
			"Use a corrected-claim or void/replace transaction instead of a new submission",
		},
		model.ScenarioTimelyFiling: {
			"Confirm the payer's filing limit and the date the claim was first submitted",
			"Gather proof of timely submission, such as clearinghouse acceptance reports",
			"File an appeal with the proof of timely filing attached",
			"Review intake workflows to prevent future filing-limit misses",
		},
		model.ScenarioCodingError: {
			"Have a certified coder review the diagnosis and procedure codes for the encounter",
			"Validate code combinations against current NCCI edits",
			"Check modifier usage against the payer's billing guidelines",
			"Submit a corrected claim with the revised coding",
		},
		model.ScenarioMissingInformation: {
			"Identify the specific element or attachment the payer flagged as missing",
			"Collect the missing documentation from the provider or medical record",
			"Resubmit the claim with the complete information attached",
			"Add a front-end claim edit to catch this omission before submission",
		},
		model.ScenarioGeneral: {
			"Review the payer's rejection code documentation for the specific denial reason",
			"Contact the payer's provider services line with the claim details for clarification",
			"Audit the claim for data entry discrepancies against the source encounter",
			"Escalate to a senior claims analyst if the rejection reason remains unclear",
		},
	}

	confidence := map[model.ScenarioCategory]float64{
		model.ScenarioMemberIDInvalid:    0.86,
		model.ScenarioEligibilityIssue:   0.82,
		model.ScenarioProviderCredential: 0.80,
		model.ScenarioServiceNotCovered:  0.78,
		model.ScenarioPriorAuthRequired:  0.85,
		model.ScenarioDuplicateClaim:     0.88,
		model.ScenarioTimelyFiling:       0.84,
		model.ScenarioCodingError:        0.79,
		model.ScenarioMissingInformation: 0.81,
		model.ScenarioGeneral:            0.70,
	}

	out := make(map[model.ScenarioCategory]Suggestion, len(table))
	for scenario, suggestions := range table {
		out[scenario] = Suggestion{
			Suggestions: suggestions,
			Confidence:  confidence[scenario],
			Model:       "simulated",
			Simulated:   true,
		}
	}
	return out
}
