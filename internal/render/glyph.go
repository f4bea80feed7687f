package render

import "strings"

// symbolRanges are pictographic and icon blocks the text faces usually lack.
var symbolRanges = [...][2]rune{
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0xE000, 0xF8FF},   // private use area
}

const (
	missingGlyph = '?'
	emojiVS      = '\uFE0F'
	textVS       = '\uFE0E'
)

// IsSymbol reports whether r is routed to the symbol face.
func IsSymbol(r rune) bool {
	for _, rg := range symbolRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// run is a maximal piece of a line painted with one face.
type run struct {
	Text string
	Role Role
}

// segment splits a line into face runs. Symbol runes go to the symbol face when it has the
// glyph; otherwise they become '?' in the primary face, as does any other rune the primary
// face lacks. Each substituted rune is passed to missing when it is not nil. Variation
// selectors are dropped.
func segment(line string, primary Role, fonts *FontSet, missing func(rune)) []run {
	var (
		out  []run
		buf  strings.Builder
		role = primary
	)
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, run{Text: buf.String(), Role: role})
			buf.Reset()
		}
	}

	for _, r := range line {
		if r == emojiVS || r == textVS {
			continue
		}
		want, ch := primary, r
		switch {
		case IsSymbol(r):
			if fonts.Symbol != nil && fonts.Symbol.HasGlyph(r) {
				want = RoleSymbol
			} else {
				ch = missingGlyph
			}
		case !fonts.Face(primary).HasGlyph(r):
			ch = missingGlyph
		}
		if ch == missingGlyph && r != missingGlyph && missing != nil {
			missing(r)
		}
		if want != role {
			flush()
			role = want
		}
		buf.WriteRune(ch)
	}
	flush()
	return out
}
