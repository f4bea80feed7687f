package fields

import (
	"math"
	"unicode/utf8"

	"cvdoc/internal/model"
)

// Analysis scores how complete a CV is. Sub-scores are percentages of each section's
// maximum; Overall weights them 25/30/25/20.
type Analysis struct {
	Overall     int          `json:"overall_score"`
	Personal    float64      `json:"personal_info_score"`
	Experience  float64      `json:"experience_score"`
	Skills      float64      `json:"skills_score"`
	Education   float64      `json:"education_score"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggestion is one improvement hint shown next to the completeness score.
type Suggestion struct {
	Type        string `json:"type"`
	Field       string `json:"field"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	maxSuggestions   = 4
	minSummaryLength = 50
	minTechSkills    = 3
)

// Analyze scores rec and attaches at most four suggestions.
func Analyze(rec model.FieldRecord) Analysis {
	var a Analysis

	personal := 0
	personal += points(rec.FullName != "", 5)
	personal += points(rec.Email != "", 5)
	personal += points(rec.Phone != "", 3)
	personal += points(rec.Position != "", 5)
	personal += points(rec.Address != "", 2)
	personal += points(rec.Summary != "", 5)
	a.Personal = percent(personal, 25)

	experience := 0
	if len(rec.Experience) > 0 {
		experience += 15
		for i, e := range rec.Experience {
			if i == 3 {
				break
			}
			experience += points(e.Company != "", 2)
			experience += points(e.Position != "", 2)
			experience += points(e.Description != "", 1)
		}
	}
	a.Experience = percent(experience, 30)

	skills := min(15, len(rec.TechnicalSkills)*3) + min(10, len(rec.SoftSkills)*2)
	a.Skills = percent(skills, 25)

	education := 0
	if len(rec.Education) > 0 {
		education += 10
		for i, e := range rec.Education {
			if i == 2 {
				break
			}
			education += points(e.School != "", 3)
			education += points(e.Degree != "", 2)
		}
	}
	a.Education = percent(education, 20)

	a.Overall = int(a.Personal*0.25 + a.Experience*0.30 + a.Skills*0.25 + a.Education*0.20)
	a.Suggestions = Suggest(rec)
	return a
}

// Suggest returns improvement hints in priority order, capped at four.
func Suggest(rec model.FieldRecord) []Suggestion {
	out := make([]Suggestion, 0, maxSuggestions)
	if rec.Phone == "" {
		out = append(out, Suggestion{"warning", "phone", "Add a phone number", "Recruiters can contact you directly by phone."})
	}
	if rec.Address == "" {
		out = append(out, Suggestion{"info", "address", "Add an address", "An address helps recruiters judge a suitable work location."})
	}
	switch n := utf8.RuneCountInString(rec.Summary); {
	case n == 0:
		out = append(out, Suggestion{"warning", "summary", "Add a summary", "Describe yourself and your career goals briefly."})
	case n < minSummaryLength:
		out = append(out, Suggestion{"info", "summary", "Expand your summary", "A summary of at least 50 characters makes a better impression."})
	}
	if len(rec.Experience) == 0 {
		out = append(out, Suggestion{"warning", "experience", "Add work experience", "Add at least one job or internship."})
	}
	if len(rec.TechnicalSkills) < minTechSkills {
		out = append(out, Suggestion{"info", "technical_skills", "Add technical skills", "List three to five skills relevant to the position."})
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func points(ok bool, n int) int {
	if ok {
		return n
	}
	return 0
}

func percent(score, total int) float64 {
	return math.Min(100, float64(score)/float64(total)*100)
}
