package classification

import "github.com/aurelianware/claimsentry/internal/model"

// Rule maps rejection codes and description keywords to a scenario
// category. A rule matches when the rejection code starts with any of
// CodePrefixes or the description contains any of Keywords
// (case-insensitive). A rule with no prefixes and no keywords matches
// everything.
type Rule struct {
	Category     model.ScenarioCategory
	CodePrefixes []string
	Keywords     []string
}

// DefaultRules returns the fixed, ordered rule table. First match wins.
//
// Precedence: identity and eligibility defects invalidate a claim before
// benefit or coding questions arise, so those rules are evaluated first.
// The general rule is last and always matches.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category:     model.ScenarioMemberIDInvalid,
			CodePrefixes: []string{"ID", "MB"},
			Keywords: []string{
				"member id",
				"subscriber id",
				"member identification",
				"invalid member",
			},
		},
		{
			Category:     model.ScenarioEligibilityIssue,
			CodePrefixes: []string{"EL", "EB"},
			Keywords: []string{
				"eligib",
				"coverage terminated",
				"coverage lapsed",
				"not active on date of service",
			},
		},
		{
			Category:     model.ScenarioProviderCredential,
			CodePrefixes: []string{"PR", "NP"},
			Keywords: []string{
				"credential",
				"npi",
				"provider not enrolled",
				"provider identifier",
				"taxonomy",
			},
		},
		{
			Category:     model.ScenarioPriorAuthRequired,
			CodePrefixes: []string{"PA", "AU"},
			Keywords: []string{
				"prior auth",
				"preauthorization",
				"pre-authorization",
				"authorization required",
				"precertification",
			},
		},
		{
			Category:     model.ScenarioServiceNotCovered,
			CodePrefixes: []string{"NC", "SV"},
			Keywords: []string{
				"not covered",
				"non-covered",
				"benefit exclusion",
				"excluded from coverage",
			},
		},
		{
			Category:     model.ScenarioDuplicateClaim,
			CodePrefixes: []string{"DU", "DP"},
			Keywords: []string{
				"duplicate",
				"previously submitted",
				"already adjudicated",
			},
		},
		{
			Category:     model.ScenarioTimelyFiling,
			CodePrefixes: []string{"TF"},
			Keywords: []string{
				"timely filing",
				"filing limit",
				"filing deadline",
				"untimely",
			},
		},
		{
			Category:     model.ScenarioCodingError,
			CodePrefixes: []string{"CO", "CD"},
			Keywords: []string{
				"diagnosis code",
				"procedure code",
				"invalid code",
				"modifier",
				"cpt",
				"hcpcs",
				"icd",
			},
		},
		{
			Category:     model.ScenarioMissingInformation,
			CodePrefixes: []string{"MI", "MA"},
			Keywords: []string{
				"missing",
				"incomplete",
				"additional information",
				"documentation required",
				"attachment",
			},
		},
		{
			// Catch-all: matches every rejection.
			Category: model.ScenarioGeneral,
		},
	}
}
