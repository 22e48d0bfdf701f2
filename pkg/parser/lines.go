package parser

import "strings"

// line is one preprocessed source line. Num is the 1-based number of the
// first physical line it came from (coalesced lines keep the first number).
type line struct {
	Num  int
	Text string
}

// preprocess trims lines, drops blanks and %%-comments, and coalesces
// adjacent lines while the accumulated bracket count is positive. The
// coalescing supports multi-line node labels; joined fragments keep a
// newline between them so the label text survives intact.
func preprocess(source string) []line {
	var out []line

	var buf strings.Builder
	bufNum := 0
	depth := 0

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, line{Num: bufNum, Text: buf.String()})
			buf.Reset()
		}
		depth = 0
	}

	for i, raw := range strings.Split(source, "\n") {
		text := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if text == "" || strings.HasPrefix(text, "%%") {
			continue
		}

		if depth > 0 {
			buf.WriteString("\n")
			buf.WriteString(text)
		} else {
			bufNum = i + 1
			buf.WriteString(text)
		}

		depth += bracketBalance(text)
		if depth <= 0 {
			flush()
		}
	}
	flush() // unbalanced tail is kept and skipped later as unparseable

	return out
}

// bracketBalance counts opening minus closing brackets in s.
func bracketBalance(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case '[', '(', '{':
			n++
		case ']', ')', '}':
			n--
		}
	}
	return n
}
