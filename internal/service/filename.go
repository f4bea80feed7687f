package service

import (
	"strings"
	"unicode"
)

// SafeFilename builds the download name "<title>_<id>.<ext>". The title keeps letters,
// digits, spaces, '-' and '_'; trailing spaces are dropped.
func SafeFilename(title, id, ext string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimRight(b.String(), " ")
	if safe == "" {
		safe = "CV"
	}
	return safe + "_" + id + "." + ext
}
