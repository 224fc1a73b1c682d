package detector

import (
	"strings"

	"rfpdesk/internal/model"
)

// roleRule binds one column role to a header match predicate. Rule order
// is precedence: the first matching rule wins, so response headers like
// "Vendor Response" are claimed before looser question keywords get a
// chance.
type roleRule struct {
	Role  model.ColumnRole
	Match func(header string) bool
}

func matchSubstring(subs ...string) func(string) bool {
	return func(header string) bool {
		for _, s := range subs {
			if strings.Contains(header, s) {
				return true
			}
		}
		return false
	}
}

// matchToken matches whole tokens only. Short identifier keywords like
// "id" or "no." would otherwise fire inside ordinary words.
func matchToken(tokens ...string) func(string) bool {
	return func(header string) bool {
		fields := strings.FieldsFunc(header, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '(' || r == ')' || r == '/' || r == ':' || r == ','
		})
		for _, f := range fields {
			f = strings.TrimSuffix(f, ".")
			for _, t := range tokens {
				if f == strings.TrimSuffix(t, ".") {
					return true
				}
			}
		}
		return false
	}
}

// defaultRoleRules is the keyword table consulted for every header cell,
// matched against the lowercased trimmed text.
func defaultRoleRules() []roleRule {
	return []roleRule{
		{
			Role: model.RoleResponse,
			Match: matchSubstring(
				"vendor response", "response", "vendor answer", "answer",
				"supplier response", "your response", "bidder response",
			),
		},
		{
			Role: model.RoleQuestion,
			Match: matchSubstring(
				"question", "requirement", "criteria", "description",
				"request", "query", "detail", "specification",
			),
		},
		{
			Role: model.RoleScore,
			Match: matchSubstring(
				"vendor score", "score", "rating", "compliance",
				"vendor rating", "y/n",
			),
		},
		{
			Role:  model.RoleCategory,
			Match: matchSubstring("category", "section"),
		},
		{
			Role: model.RoleAdditional,
			Match: matchSubstring(
				"additional", "comments", "notes", "remarks", "elaboration",
			),
		},
		{
			Role: model.RoleIdentifier,
			Match: matchToken(
				"#", "id", "ref", "reference", "no.", "number", "item", "sr",
			),
		},
	}
}
