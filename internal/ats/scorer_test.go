package ats

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeZeroSignalText(t *testing.T) {
	got := Analyze("lorem ipsum dolor sit amet")

	if got.Score != 0 {
		t.Fatalf("expected score 0, got %d", got.Score)
	}
	if got.Rating != RatingPoor {
		t.Fatalf("expected rating %s, got %s", RatingPoor, got.Rating)
	}
	if len(got.FoundKeywords) != 0 {
		t.Fatalf("expected no keywords, got %v", got.FoundKeywords)
	}
	if len(got.Recommendations) == 0 {
		t.Fatalf("expected recommendations for a weak resume")
	}
}

func TestAnalyzeClampsAtHundred(t *testing.T) {
	// All 20 keywords (100) plus sections, length and capitalization would
	// exceed 100 without the clamp.
	parts := append([]string{}, keywords...)
	parts = append(parts,
		"Experience", "Education", "Skills", "email@example.com",
	)
	text := strings.Join(parts, " ") + " " + strings.Repeat("detail ", 200)

	got := Analyze(text)
	if got.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", got.Score)
	}
	if got.Rating != RatingExcellent {
		t.Fatalf("expected rating %s, got %s", RatingExcellent, got.Rating)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	text := "Experienced Python developer. Skills: docker, git. Education: BSc. email@example.com"

	first := Analyze(text)
	second := Analyze(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestAnalyzeLengthBoundary(t *testing.T) {
	short := Analyze(strings.Repeat("word ", 199))
	long := Analyze(strings.Repeat("word ", 200))

	if short.WordCount != 199 || long.WordCount != 200 {
		t.Fatalf("unexpected word counts: %d, %d", short.WordCount, long.WordCount)
	}
	if long.Score-short.Score != lengthPoints {
		t.Fatalf("expected a %d point length bonus, got %d", lengthPoints, long.Score-short.Score)
	}
}

func TestAnalyzeSubstringKeywordMatch(t *testing.T) {
	// "javascript" contains "java", so both keywords fire.
	got := Analyze("javascript")

	found := map[string]bool{}
	for _, kw := range got.FoundKeywords {
		found[kw] = true
	}
	if !found["javascript"] || !found["java"] {
		t.Fatalf("expected javascript and java to match, got %v", got.FoundKeywords)
	}
}

func TestAnalyzeShortResumeWithSignals(t *testing.T) {
	got := Analyze("I have experience with JavaScript and React. Contact me at a@b.com.")

	for _, kw := range []string{"javascript", "react"} {
		if !contains(got.FoundKeywords, kw) {
			t.Fatalf("expected keyword %q in %v", kw, got.FoundKeywords)
		}
	}
	for _, strength := range []string{"Includes a experience section", "Includes a contact section"} {
		if !contains(got.Strengths, strength) {
			t.Fatalf("expected strength %q in %v", strength, got.Strengths)
		}
	}
	if got.Score <= 0 {
		t.Fatalf("expected positive score, got %d", got.Score)
	}
}

func TestAnalyzeTypicalResume(t *testing.T) {
	text := `Jane Doe
email: jane@example.com phone: 555-0100

Experience
Senior engineer building React and Node services on AWS with Docker.

Education
BSc Computer Science, State University.

Skills
JavaScript, TypeScript, Python, SQL, Git, Linux.
` + strings.Repeat("Led delivery of customer facing features. ", 40)

	got := Analyze(text)
	if got.Rating != RatingExcellent {
		t.Fatalf("expected rating %s, got %s (score %d)", RatingExcellent, got.Rating, got.Score)
	}
	if len(got.Weaknesses) != 0 {
		t.Fatalf("expected no weaknesses, got %v", got.Weaknesses)
	}
	for _, kw := range []string{"react", "node", "aws", "docker", "python", "sql", "git", "linux"} {
		if !contains(got.FoundKeywords, kw) {
			t.Fatalf("expected keyword %q in %v", kw, got.FoundKeywords)
		}
	}
}

func TestRatingBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, RatingPoor},
		{39, RatingPoor},
		{40, RatingFair},
		{59, RatingFair},
		{60, RatingGood},
		{79, RatingGood},
		{80, RatingExcellent},
		{100, RatingExcellent},
	}
	for _, tc := range cases {
		if got := rating(tc.score); got != tc.want {
			t.Errorf("rating(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestRecommendFallback(t *testing.T) {
	got := recommend(90, 300, 10, map[string]bool{})
	if len(got) != 1 || got[0] != fallbackRecommendation {
		t.Fatalf("expected fallback recommendation, got %v", got)
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
