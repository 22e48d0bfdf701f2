package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	brTagRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	angleTagRe = regexp.MustCompile(`<[^>]*>`)
	uniEscRe   = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)
)

// cleanLabel runs the shared label cleanup pipeline: strip one pair of
// surrounding quotes, turn <br/> into newlines, drop any other angle tag,
// decode \uNNNN and \n escapes, and collapse whitespace around newlines.
func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	s = stripQuotes(s)
	s = brTagRe.ReplaceAllString(s, "\n")
	s = angleTagRe.ReplaceAllString(s, "")
	s = uniEscRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
	s = strings.ReplaceAll(s, `\n`, "\n")

	parts := strings.Split(s, "\n")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, "\n")
}

// stripQuotes removes one matching pair of surrounding single or double
// quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// slug derives an identifier from a title: lowercase, every non-alphanumeric
// mapped to '-', leading and trailing dashes trimmed.
func slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
