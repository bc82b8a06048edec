// Package classification maps claim rejections to remediation scenarios
// using a fixed, ordered rule table.
package classification

import (
	"strings"

	"github.com/aurelianware/claimsentry/internal/model"
)

// Classifier evaluates rejection codes and descriptions against an ordered
// rule table. It is pure and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the default rule table.
func NewClassifier() *Classifier {
	return NewClassifierWithRules(DefaultRules())
}

// NewClassifierWithRules creates a classifier with a custom rule table.
// Rule order is the precedence order; callers should keep a catch-all
// rule last if they need total classification.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the scenario category for a rejection code and
// description. It is total and deterministic: every input, including
// empty strings, maps to exactly one category, with general as the
// catch-all.
func (c *Classifier) Classify(code, description string) model.ScenarioCategory {
	normCode := strings.ToUpper(strings.TrimSpace(code))
	normDesc := strings.ToLower(description)

	for _, rule := range c.rules {
		if matchesRule(rule, normCode, normDesc) {
			return rule.Category
		}
	}

	return model.ScenarioGeneral
}

// matchesRule checks a normalized code and description against one rule.
func matchesRule(rule Rule, code, description string) bool {
	if len(rule.CodePrefixes) == 0 && len(rule.Keywords) == 0 {
		return true
	}

	for _, prefix := range rule.CodePrefixes {
		if code != "" && strings.HasPrefix(code, prefix) {
			return true
		}
	}

	for _, keyword := range rule.Keywords {
		if description != "" && strings.Contains(description, keyword) {
			return true
		}
	}

	return false
}
