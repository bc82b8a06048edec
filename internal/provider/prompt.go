package provider

import (
	"fmt"
	"strings"

	"github.com/aurelianware/claimsentry/internal/model"
)

const systemPrompt = "You are a healthcare claims remediation assistant. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. Start your response directly with { and end with }."

// scenarioInstructions carries the per-scenario guidance sent to the
// remote service. Keyed by the fixed category set.
var scenarioInstructions = map[model.ScenarioCategory]string{
	model.ScenarioMemberIDInvalid:    "The claim was rejected because the member identifier is invalid or unrecognized.",
	model.ScenarioEligibilityIssue:   "The claim was rejected because of a member eligibility or coverage issue.",
	model.ScenarioProviderCredential: "The claim was rejected because of a provider identifier, enrollment, or credentialing issue.",
	model.ScenarioServiceNotCovered:  "The claim was rejected because the service is not covered under the member's benefit plan.",
	model.ScenarioPriorAuthRequired:  "The claim was rejected because prior authorization is required for the service.",
	model.ScenarioDuplicateClaim:     "The claim was rejected as a duplicate of a previously submitted claim.",
	model.ScenarioTimelyFiling:       "The claim was rejected for exceeding the payer's timely filing limit.",
	model.ScenarioCodingError:        "The claim was rejected because of a diagnosis, procedure, or modifier coding error.",
	model.ScenarioMissingInformation: "The claim was rejected because required information or documentation is missing.",
	model.ScenarioGeneral:            "The claim was rejected for a reason that does not match a known scenario.",
}

// buildPrompt assembles the user prompt from the scenario instruction and
// a summary of the redacted record. Only redacted, validated fields may
// appear here; this string crosses the trust boundary.
func buildPrompt(scenario model.ScenarioCategory, rec model.RedactedRecord) string {
	var b strings.Builder

	b.WriteString(scenarioInstructions[scenario])
	b.WriteString("\n\nRejection details (sensitive values redacted):\n")

	writeIf := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}
	writeIf("Rejection code", rec.RejectionCode)
	writeIf("Rejection description", rec.RejectionDescription)
	writeIf("Payer", rec.PayerName)
	writeIf("Status category", rec.StatusCategory)
	writeIf("Service date", rec.ServiceDate)
	if rec.BilledAmount > 0 {
		fmt.Fprintf(&b, "- Billed amount: %.2f\n", rec.BilledAmount)
	}

	b.WriteString("\nProvide between 3 and 5 concrete remediation steps for claims-operations staff, ordered by priority. Respond as JSON: {\"suggestions\": [\"...\"], \"confidence\": 0.0}. Confidence is your estimated reliability of the suggestions between 0 and 1.")

	return b.String()
}

// cleanMarkdownWrapper strips a ```json fence if the model wrapped its
// response despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}
