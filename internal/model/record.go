package model

// Experience is one entry of a CV's work history.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Education is one entry of a CV's education history.
type Education struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// FieldRecord is the structured data that fills a template and is recovered from a rendered one.
// List positions bind to node ids by convention: Experience[0] is exp1_*, TechnicalSkills[0] is tech_skill_1.
type FieldRecord struct {
	FullName        string       `json:"full_name"`
	Position        string       `json:"position"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Address         string       `json:"address"`
	Website         string       `json:"website"`
	Summary         string       `json:"summary"`
	Experience      []Experience `json:"experience"`
	Education       []Education  `json:"education"`
	TechnicalSkills []string     `json:"technical_skills"`
	SoftSkills      []string     `json:"soft_skills"`
	Languages       []string     `json:"languages"`
}

// Data flattens the record into the generic map used by placeholder resolution.
func (r FieldRecord) Data() map[string]any {
	exp := make([]any, len(r.Experience))
	for i, e := range r.Experience {
		exp[i] = map[string]any{
			"company":     e.Company,
			"position":    e.Position,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
			"description": e.Description,
		}
	}
	edu := make([]any, len(r.Education))
	for i, e := range r.Education {
		edu[i] = map[string]any{
			"school":      e.School,
			"degree":      e.Degree,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
			"description": e.Description,
		}
	}
	return map[string]any{
		"full_name":        r.FullName,
		"position":         r.Position,
		"email":            r.Email,
		"phone":            r.Phone,
		"address":          r.Address,
		"website":          r.Website,
		"summary":          r.Summary,
		"experience":       exp,
		"education":        edu,
		"technical_skills": stringsToAny(r.TechnicalSkills),
		"soft_skills":      stringsToAny(r.SoftSkills),
		"languages":        stringsToAny(r.Languages),
	}
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
