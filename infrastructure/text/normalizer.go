// Package text normalizes Vietnamese and English social media comments into
// the cleaned form that every classifier and the duplicate check operate on.
package text

import (
	"regexp"
	"strings"

	"github.com/pagepulse/pagepulse/domain/comment"
)

// vietnameseChars lists every lowercase Vietnamese diacritic letter. Patterns
// using it are compiled case-insensitively so uppercase forms survive until
// the final lowercasing step.
const vietnameseChars = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ"

var (
	linkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`https?://\S+`),
		regexp.MustCompile(`www\.\S+`),
		regexp.MustCompile(`(?i)[a-z0-9]+\.(com|vn|net|org|io)\S*`),
	}
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\+84|0)[0-9]{9,10}`),
		regexp.MustCompile(`[0-9]{10,11}`),
	}
	tagPattern = regexp.MustCompile(`[@#]\w+`)

	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)

	specialPattern = regexp.MustCompile(`(?i)[^\w\s` + vietnameseChars + `]`)
	spacePattern   = regexp.MustCompile(`\s+`)

	vietnamesePattern = regexp.MustCompile(`(?i)[` + vietnameseChars + `]`)
)

// stopwords are excluded from keyword extraction. Vietnamese first, then
// English.
var stopwords = map[string]struct{}{
	"là": {}, "của": {}, "và": {}, "có": {}, "này": {}, "được": {},
	"với": {}, "trong": {}, "cho": {}, "để": {}, "các": {}, "một": {},
	"những": {}, "đã": {}, "sẽ": {}, "không": {}, "thì": {}, "rất": {},
	"về": {}, "đang": {}, "như": {}, "từ": {}, "khi": {}, "do": {},
	"vì": {}, "nếu": {}, "hoặc": {},
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
}

// maxKeywords caps how many keywords are extracted per comment.
const maxKeywords = 5

// Clean normalizes a raw comment. Links, phone numbers, mentions, hashtags,
// and emoji are stripped in that order, then everything except word characters,
// whitespace, and Vietnamese letters is removed, and the result is
// lowercased with whitespace collapsed. Clean is idempotent.
func Clean(message string) string {
	s := message
	for _, p := range linkPatterns {
		s = p.ReplaceAllString(s, " ")
	}
	for _, p := range phonePatterns {
		s = p.ReplaceAllString(s, " ")
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = emojiPattern.ReplaceAllString(s, " ")
	s = specialPattern.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Keywords extracts up to five keywords from a cleaned comment: words longer
// than three runes that are not stopwords, ranked by frequency with earlier
// first occurrence breaking ties.
func Keywords(cleaned string) []string {
	words := strings.Fields(cleaned)

	counts := make(map[string]int)
	order := make(map[string]int)
	var unique []string
	for i, w := range words {
		if len([]rune(w)) <= 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, seen := counts[w]; !seen {
			order[w] = i
			unique = append(unique, w)
		}
		counts[w]++
	}

	// Selection sort over a small set: highest count first, earliest
	// first-occurrence on ties.
	result := make([]string, 0, maxKeywords)
	for len(result) < maxKeywords && len(unique) > 0 {
		bestIdx := 0
		for i := 1; i < len(unique); i++ {
			a, b := unique[i], unique[bestIdx]
			if counts[a] > counts[b] || (counts[a] == counts[b] && order[a] < order[b]) {
				bestIdx = i
			}
		}
		result = append(result, unique[bestIdx])
		unique = append(unique[:bestIdx], unique[bestIdx+1:]...)
	}
	return result
}

// DetectLanguage returns "vi" when the text contains any Vietnamese
// diacritic letter, otherwise "en".
func DetectLanguage(message string) string {
	if vietnamesePattern.MatchString(message) {
		return "vi"
	}
	return "en"
}

// HasLink reports whether the raw message contains a URL or bare domain.
func HasLink(message string) bool {
	for _, p := range linkPatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

// HasTag reports whether the raw message mentions another user or carries a
// hashtag.
func HasTag(message string) bool {
	return tagPattern.MatchString(message)
}

// HasEmoji reports whether the raw message contains emoji.
func HasEmoji(message string) bool {
	return emojiPattern.MatchString(message)
}

// HasPhone reports whether the raw message contains a phone number.
func HasPhone(message string) bool {
	for _, p := range phonePatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

// Describe computes structural metadata from the raw message.
func Describe(message string) comment.Metadata {
	return comment.Metadata{
		Length:    len([]rune(message)),
		WordCount: len(strings.Fields(message)),
		HasEmoji:  HasEmoji(message),
		HasLink:   HasLink(message),
		HasTag:    HasTag(message),
		Language:  DetectLanguage(message),
	}
}
