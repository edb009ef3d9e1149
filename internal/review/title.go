package review

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalTitle normalizes a user-entered title for lookup and fetch:
// surrounding whitespace is trimmed, runs of internal whitespace collapse
// to one space, and an all-lowercase title is title-cased to match how the
// catalog spells it. Mixed-case input is preserved, since deliberate casing
// ("WALL·E", "iRobot") carries meaning.
func CanonicalTitle(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	title := strings.Join(fields, " ")

	for _, r := range title {
		if unicode.IsUpper(r) {
			return title
		}
	}
	return cases.Title(language.Und).String(title)
}
