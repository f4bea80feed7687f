// Package fields maps between populated CV documents and field records using the node id
// naming convention (exp1_company, edu2_school, tech_skill_3, ...).
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"cvdoc/internal/model"
	"cvdoc/internal/scene"
)

// Contact icon prefixes painted in front of contact fields.
const (
	IconEmail   = "\u2709"
	IconPhone   = "\U0001F4DE"
	IconAddress = "\U0001F4CD"
	Bullet      = "\u2022"

	variationSelector = "\uFE0F"
)

// maxEntries bounds list growth from ids such as exp99999_company.
const maxEntries = 50

var (
	sectionIDRE = regexp.MustCompile(`^(exp|edu)(\d+)_(position|company|degree|school|date|description)$`)
	listIDRE    = regexp.MustCompile(`^(tech_skill|soft_skill|language)_(\d+)$`)
)

// Extract rebuilds a field record from a populated document. Unknown ids are ignored and
// trailing blank list entries are dropped.
func Extract(doc *scene.Document) model.FieldRecord {
	var rec model.FieldRecord
	seen := make(map[string]struct{})

	for _, t := range doc.TextNodes() {
		id := t.ID
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}

		switch id {
		case "full_name":
			rec.FullName = t.Text
		case "position":
			rec.Position = t.Text
		case "website":
			rec.Website = t.Text
		case "summary":
			rec.Summary = t.Text
		case "email":
			rec.Email = StripIcon(t.Text)
		case "phone":
			rec.Phone = StripIcon(t.Text)
		case "address":
			rec.Address = StripIcon(t.Text)
		default:
			extractIndexed(&rec, id, t.Text)
		}
	}

	trimRecord(&rec)
	return rec
}

func extractIndexed(rec *model.FieldRecord, id, text string) {
	if m := sectionIDRE.FindStringSubmatch(id); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > maxEntries {
			return
		}
		i := n - 1
		switch m[1] {
		case "exp":
			for len(rec.Experience) <= i {
				rec.Experience = append(rec.Experience, model.Experience{})
			}
			e := &rec.Experience[i]
			switch m[3] {
			case "position":
				e.Position = text
			case "company":
				e.Company = text
			case "date":
				e.StartDate, e.EndDate = splitDate(text)
			case "description":
				e.Description = text
			}
		case "edu":
			for len(rec.Education) <= i {
				rec.Education = append(rec.Education, model.Education{})
			}
			e := &rec.Education[i]
			switch m[3] {
			case "degree":
				e.Degree = text
			case "school":
				e.School = text
			case "date":
				e.StartDate, e.EndDate = splitDate(text)
			case "description":
				e.Description = text
			}
		}
		return
	}

	if m := listIDRE.FindStringSubmatch(id); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > maxEntries {
			return
		}
		value := StripBullet(text)
		switch m[1] {
		case "tech_skill":
			rec.TechnicalSkills = setAt(rec.TechnicalSkills, n-1, value)
		case "soft_skill":
			rec.SoftSkills = setAt(rec.SoftSkills, n-1, value)
		case "language":
			rec.Languages = setAt(rec.Languages, n-1, value)
		}
	}
}

func setAt(list []string, i int, v string) []string {
	for len(list) <= i {
		list = append(list, "")
	}
	list[i] = v
	return list
}

func splitDate(text string) (start, end string) {
	start, end, _ = strings.Cut(text, " - ")
	return start, end
}

// StripIcon removes a leading contact icon, an optional emoji variation selector and one
// following space. Text without an icon is returned unchanged.
func StripIcon(text string) string {
	for _, icon := range []string{IconEmail, IconPhone, IconAddress} {
		rest, ok := strings.CutPrefix(text, icon)
		if !ok {
			continue
		}
		rest = strings.TrimPrefix(rest, variationSelector)
		return strings.TrimPrefix(rest, " ")
	}
	return text
}

// StripBullet removes a leading bullet and one following space.
func StripBullet(text string) string {
	rest, ok := strings.CutPrefix(text, Bullet)
	if !ok {
		return text
	}
	return strings.TrimPrefix(rest, " ")
}

func trimRecord(rec *model.FieldRecord) {
	for n := len(rec.Experience); n > 0 && rec.Experience[n-1] == (model.Experience{}); n-- {
		rec.Experience = rec.Experience[:n-1]
	}
	for n := len(rec.Education); n > 0 && rec.Education[n-1] == (model.Education{}); n-- {
		rec.Education = rec.Education[:n-1]
	}
	if len(rec.Experience) == 0 {
		rec.Experience = nil
	}
	if len(rec.Education) == 0 {
		rec.Education = nil
	}
	rec.TechnicalSkills = trimStrings(rec.TechnicalSkills)
	rec.SoftSkills = trimStrings(rec.SoftSkills)
	rec.Languages = trimStrings(rec.Languages)
}

func trimStrings(list []string) []string {
	n := len(list)
	for n > 0 && strings.TrimSpace(list[n-1]) == "" {
		n--
	}
	if n == 0 {
		return nil
	}
	return list[:n]
}
