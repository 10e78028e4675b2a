package ats

// recommendation rules fire on score thresholds and observed weaknesses,
// in a fixed order so output is deterministic.
type recommendationRule struct {
	applies func(score, wordCount, keywordsFound int, missing map[string]bool) bool
	text    string
}

var recommendationRules = []recommendationRule{
	{
		applies: func(score, _, keywordsFound int, _ map[string]bool) bool {
			return score < 40 || keywordsFound < 3
		},
		text: "Add more technology keywords that match the roles you are applying for.",
	},
	{
		applies: func(_, _, _ int, missing map[string]bool) bool {
			return missing["experience"]
		},
		text: "Add a dedicated work experience section with role titles and dates.",
	},
	{
		applies: func(_, _, _ int, missing map[string]bool) bool {
			return missing["skills"]
		},
		text: "List your technical skills in a clearly labeled skills section.",
	},
	{
		applies: func(_, _, _ int, missing map[string]bool) bool {
			return missing["contact"]
		},
		text: "Include contact details such as an email address and phone number.",
	},
	{
		applies: func(_, wordCount, _ int, _ map[string]bool) bool {
			return wordCount < minWordCount
		},
		text: "Expand your resume with concrete accomplishments; aim for at least one full page.",
	},
	{
		applies: func(score, _, _ int, _ map[string]bool) bool {
			return score >= 40 && score < 80
		},
		text: "Quantify achievements with numbers and outcomes to strengthen impact.",
	},
}

const fallbackRecommendation = "Tailor your resume to each job description before applying."

func recommend(score, wordCount, keywordsFound int, missing map[string]bool) []string {
	out := []string{}
	for _, rule := range recommendationRules {
		if rule.applies(score, wordCount, keywordsFound, missing) {
			out = append(out, rule.text)
		}
	}
	if len(out) == 0 {
		out = append(out, fallbackRecommendation)
	}
	return out
}
