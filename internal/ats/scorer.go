package ats

import (
	"strings"
	"unicode"
)

// Analysis is the scorer's output record.
type Analysis struct {
	Score           int      `json:"score"`
	Rating          string   `json:"rating"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	FoundKeywords   []string `json:"foundKeywords"`
	WordCount       int      `json:"wordCount"`
	Recommendations []string `json:"recommendations"`
}

// Rating bands.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
)

const (
	keywordPoints        = 5
	sectionPoints        = 10
	lengthPoints         = 10
	capitalizationPoints = 5
	minWordCount         = 200
)

// keywords is the fixed technology rubric. Matching is substring-based, so
// "java" also fires inside "javascript"; that quirk is intentional.
var keywords = []string{
	"javascript", "typescript", "python", "java", "react", "angular",
	"node", "sql", "mongodb", "postgresql", "aws", "azure", "docker",
	"kubernetes", "git", "html", "css", "rest", "agile", "linux",
}

type sectionRule struct {
	name     string
	triggers []string
}

var sectionRules = []sectionRule{
	{name: "experience", triggers: []string{"experience", "work history", "employment"}},
	{name: "education", triggers: []string{"education", "degree", "university", "college"}},
	{name: "skills", triggers: []string{"skills", "technologies", "proficiencies"}},
	{name: "contact", triggers: []string{"email", "@", "phone", "contact"}},
}

// Analyze scores résumé text against the fixed rubric. Pure function: no
// I/O, deterministic for a given input. Callers must reject empty text
// before invoking it.
func Analyze(text string) Analysis {
	lower := strings.ToLower(text)

	result := Analysis{
		Rating:          RatingPoor,
		Strengths:       []string{},
		Weaknesses:      []string{},
		FoundKeywords:   []string{},
		Recommendations: []string{},
	}

	score := 0

	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			result.FoundKeywords = append(result.FoundKeywords, kw)
			score += keywordPoints
		}
	}

	missingSections := map[string]bool{}
	for _, rule := range sectionRules {
		found := false
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				found = true
				break
			}
		}
		if found {
			score += sectionPoints
			result.Strengths = append(result.Strengths, "Includes a "+rule.name+" section")
		} else {
			missingSections[rule.name] = true
			result.Weaknesses = append(result.Weaknesses, "Missing a "+rule.name+" section")
		}
	}

	result.WordCount = len(strings.Fields(text))
	if result.WordCount >= minWordCount {
		score += lengthPoints
		result.Strengths = append(result.Strengths, "Good length with sufficient detail")
	} else {
		result.Weaknesses = append(result.Weaknesses, "Resume is too short to show depth")
	}

	// Weak signal: any uppercase rune counts. Known limitation, kept as-is.
	if strings.IndexFunc(text, unicode.IsUpper) >= 0 {
		score += capitalizationPoints
		result.Strengths = append(result.Strengths, "Uses proper capitalization")
	} else {
		result.Weaknesses = append(result.Weaknesses, "No capitalization found")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	result.Score = score
	result.Rating = rating(score)
	result.Recommendations = recommend(score, result.WordCount, len(result.FoundKeywords), missingSections)

	return result
}

func rating(score int) string {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}
