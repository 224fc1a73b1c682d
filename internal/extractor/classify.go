package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"rfpdesk/internal/model"
)

// Classification pattern groups, checked in priority order:
// company_info, reference, binary, narrative. The groups are ordered so
// that "Provide your company's annual revenue" lands in company_info
// before the narrative "Provide..." opener can claim it.

var companyInfoPatterns = compileAll(
	`(?i)(company name|organisation name|organization name)`,
	`(?i)(headquarters|head office|registered address)`,
	`(?i)(number of employees|headcount|staff count|employee count)`,
	`(?i)(annual revenue|turnover|financial)`,
	`(?i)(year (founded|established|incorporated))`,
	`(?i)(ownership (structure|type))`,
	`(?i)(CEO|CTO|managing director|board of directors)`,
	`(?i)(parent company|subsidiary)`,
	`(?i)(stock|ticker|publicly traded|listed)`,
	`(?i)(identify your company|provide company details)`,
)

var referencePatterns = compileAll(
	`(?i)(client reference|customer reference|reference (name|contact|detail))`,
	`(?i)(reference (1|2|3|one|two|three))`,
	`(?i)(provide.*(reference|testimonial))`,
	`(?i)(case stud(y|ies))`,
	`(?i)(similar (project|engagement|implementation|client))`,
)

var binaryPatterns = compileAll(
	`(?i)^The system\b`,
	`(?i)^The solution\b`,
	`(?i)^The platform\b`,
	`(?i)^The product\b`,
	`(?i)^Does (your|the) (system|solution|platform|product)\b`,
	`(?i)^Can (your|the) (system|solution|platform|product|users?)\b`,
	`(?i)^Is (your|the) (system|solution|platform|product)\b`,
	`(?i)^Are (you|users|administrators)\b.*able to\b`,
	`(?i)\b(Y/N|Yes/No)\b`,
	`(?i)^(Your|The) (system|solution|platform|product) (supports?|allows?|enables?|provides?|includes?|offers?|has)\b`,
	`(?i)^It is possible\b`,
	`(?i)^There is (a |an )?\b`,
)

var narrativePatterns = compileAll(
	`(?i)^(Describe|Explain|Provide|Detail|Outline|Elaborate|Specify|List|Summarize)`,
	`(?i)^(How does|How do|How can|How will|How would)`,
	`(?i)^(What is|What are|What does|What will)`,
	`(?i)^(Please (describe|explain|provide|detail|list|outline|specify))`,
	`(?i)^(Give|State|Indicate|Identify|Define|Clarify)`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify infers the answer shape a question expects from its text.
func Classify(text string) model.QuestionType {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.QuestionNarrative
	}

	switch {
	case matchAny(companyInfoPatterns, text):
		return model.QuestionCompanyInfo
	case matchAny(referencePatterns, text):
		return model.QuestionReference
	case matchAny(binaryPatterns, text):
		return model.QuestionBinary
	case matchAny(narrativePatterns, text):
		return model.QuestionNarrative
	}

	// Short statement-like text without a question mark reads as a
	// capability assertion: answerable yes/no.
	if utf8.RuneCountInString(text) < 100 && !strings.HasSuffix(text, "?") {
		return model.QuestionBinary
	}
	return model.QuestionNarrative
}
