package transcriber

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// PostProcess tidies raw model output: whitespace is collapsed, each sentence
// starts with a capital letter and ends with terminal punctuation.
func PostProcess(raw string) string {
	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return ""
	}

	marked := sentenceBoundary.ReplaceAllString(text, "$1\x00")
	sentences := strings.Split(marked, "\x00")

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		s = string(unicode.ToUpper(r)) + s[size:]
		if !strings.ContainsAny(s[len(s)-1:], ".!?") {
			s += "."
		}
		out = append(out, s)
	}
	return strings.Join(out, " ")
}
