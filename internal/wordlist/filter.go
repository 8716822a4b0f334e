package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWordRunes bounds a practice word so that one word never fills a narrow line.
const MaxWordRunes = 20

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns the filter for lang. English keeps lowercase ASCII
// words; other languages keep words made only of letters and combining marks.
// The generator adds punctuation and capitals itself, so lists must not.
func FilterForLang(lang string) FilterFunc {
	var typeable func(rune) bool
	switch strings.ToLower(lang) {
	case "en":
		typeable = func(r rune) bool { return r >= 'a' && r <= 'z' }
	default:
		typeable = func(r rune) bool {
			return unicode.IsMark(r) || (unicode.IsLetter(r) && !unicode.IsUpper(r))
		}
	}
	return func(word string) bool {
		if word == "" || utf8.RuneCountInString(word) > MaxWordRunes {
			return false
		}
		for _, r := range word {
			if !typeable(r) {
				return false
			}
		}
		return true
	}
}
