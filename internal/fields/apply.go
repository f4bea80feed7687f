package fields

import (
	"fmt"
	"strings"

	"cvdoc/internal/model"
	"cvdoc/internal/scene"
)

// maxListNodes is how many individual skill and language nodes a template carries.
const maxListNodes = 5

// Apply writes the non-empty values of upd into doc through the id index and returns how
// many nodes changed. Empty values leave the document untouched, so a partial form only
// edits what it submits.
func Apply(doc *scene.Document, upd model.FieldRecord) int {
	a := applier{doc: doc}

	a.set("full_name", upd.FullName)
	a.set("position", upd.Position)
	a.set("website", upd.Website)
	a.set("summary", upd.Summary)
	a.setPrefixed("email", IconEmail, upd.Email)
	a.setPrefixed("phone", IconPhone, upd.Phone)
	a.setPrefixed("address", IconAddress, upd.Address)

	for i, e := range upd.Experience {
		p := fmt.Sprintf("exp%d_", i+1)
		a.set(p+"position", e.Position)
		a.set(p+"company", e.Company)
		a.set(p+"date", JoinDate(e.StartDate, e.EndDate))
		a.set(p+"description", e.Description)
	}
	for i, e := range upd.Education {
		p := fmt.Sprintf("edu%d_", i+1)
		a.set(p+"degree", e.Degree)
		a.set(p+"school", e.School)
		a.set(p+"date", JoinDate(e.StartDate, e.EndDate))
		a.set(p+"description", e.Description)
	}

	a.setList(upd.TechnicalSkills, "tech_skill_", "tech_skills_list", "technical_skills")
	a.setList(upd.SoftSkills, "soft_skill_", "soft_skills_list", "soft_skills")
	a.setList(upd.Languages, "language_", "languages_list")

	return a.changed
}

// JoinDate formats a date range the way templates display it.
func JoinDate(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

// Merge overlays the non-empty values of upd onto base. List entries merge by position.
func Merge(base, upd model.FieldRecord) model.FieldRecord {
	out := base
	out.FullName = pick(base.FullName, upd.FullName)
	out.Position = pick(base.Position, upd.Position)
	out.Email = pick(base.Email, upd.Email)
	out.Phone = pick(base.Phone, upd.Phone)
	out.Address = pick(base.Address, upd.Address)
	out.Website = pick(base.Website, upd.Website)
	out.Summary = pick(base.Summary, upd.Summary)

	out.Experience = append([]model.Experience(nil), base.Experience...)
	for i, e := range upd.Experience {
		for len(out.Experience) <= i {
			out.Experience = append(out.Experience, model.Experience{})
		}
		cur := &out.Experience[i]
		cur.Company = pick(cur.Company, e.Company)
		cur.Position = pick(cur.Position, e.Position)
		cur.StartDate = pick(cur.StartDate, e.StartDate)
		cur.EndDate = pick(cur.EndDate, e.EndDate)
		cur.Description = pick(cur.Description, e.Description)
	}
	out.Education = append([]model.Education(nil), base.Education...)
	for i, e := range upd.Education {
		for len(out.Education) <= i {
			out.Education = append(out.Education, model.Education{})
		}
		cur := &out.Education[i]
		cur.School = pick(cur.School, e.School)
		cur.Degree = pick(cur.Degree, e.Degree)
		cur.StartDate = pick(cur.StartDate, e.StartDate)
		cur.EndDate = pick(cur.EndDate, e.EndDate)
		cur.Description = pick(cur.Description, e.Description)
	}

	if len(upd.TechnicalSkills) > 0 {
		out.TechnicalSkills = upd.TechnicalSkills
	}
	if len(upd.SoftSkills) > 0 {
		out.SoftSkills = upd.SoftSkills
	}
	if len(upd.Languages) > 0 {
		out.Languages = upd.Languages
	}
	return out
}

func pick(cur, next string) string {
	if next != "" {
		return next
	}
	return cur
}

type applier struct {
	doc     *scene.Document
	changed int
}

func (a *applier) set(id, value string) bool {
	if value == "" {
		return false
	}
	if a.doc.SetText(id, value) {
		a.changed++
		return true
	}
	return false
}

func (a *applier) setPrefixed(id, icon, value string) {
	if value == "" {
		return
	}
	a.set(id, icon+" "+value)
}

// setList updates the first aggregate node found and the individual bullet nodes.
func (a *applier) setList(values []string, itemPrefix string, aggregates ...string) {
	if len(values) == 0 {
		return
	}
	joined := strings.Join(values, ", ")
	for _, id := range aggregates {
		if a.set(id, joined) {
			break
		}
	}
	for i, v := range values {
		if i >= maxListNodes {
			break
		}
		if v == "" {
			continue
		}
		a.set(fmt.Sprintf("%s%d", itemPrefix, i+1), Bullet+" "+v)
	}
}
