package parser

import (
	"regexp"
	"strings"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

// arrowOp is one recognized edge operator token.
type arrowOp struct {
	Token string
	Kind  diagram.EdgeKind
}

// arrowOps lists every recognized operator, ordered so that a longer token
// is always tried before any token that prefixes it. Only <-> produces a
// bidirectional edge. <- is kept as a plain directed operator: the reverse
// semantic was never applied by the original grammar, so the edge still
// runs first token to second token.
var arrowOps = []arrowOp{
	{"-.->", diagram.EdgeDirected},
	{"-->", diagram.EdgeDirected},
	{"==>", diagram.EdgeDirected},
	{"->>", diagram.EdgeDirected},
	{"<->", diagram.EdgeBidirectional},
	{"-<>", diagram.EdgeDirected},
	{"---", diagram.EdgeDirected},
	{"-.-", diagram.EdgeDirected},
	{"===", diagram.EdgeDirected},
	{":::", diagram.EdgeDirected},
	{":-:", diagram.EdgeDirected},
	{"...", diagram.EdgeDirected},
	{"<-", diagram.EdgeDirected},
	{"->", diagram.EdgeDirected},
	{"~", diagram.EdgeDirected},
}

// The opener must not be preceded by its own operator character, or the
// tail of "---" / "===" would be misread as an inline label opener.
var (
	inlineDashRe = regexp.MustCompile(`(^|[^-])--\s+(.+?)\s+-->`)
	inlineDotRe  = regexp.MustCompile(`(^|[^-])-\.\s+(.+?)\s+\.->`)
	inlineEqRe   = regexp.MustCompile(`(^|[^=])==\s+(.+?)\s+==>`)
)

// normalizeInlineLabels rewrites the "-- text -->" family of inline labels
// into the pipe form so both share one extraction path.
func normalizeInlineLabels(s string) string {
	s = inlineDashRe.ReplaceAllString(s, "$1-->|$2|")
	s = inlineDotRe.ReplaceAllString(s, "$1-.->|$2|")
	s = inlineEqRe.ReplaceAllString(s, "$1==>|$2|")
	return s
}

// splitEdgeLine splits a line into node segments and the operators between
// them. Operators are only recognized outside brackets, quotes, and
// pipe-wrapped labels, so labels containing arrows stay intact. For a line
// holding no operator, the whole line is returned as a single segment.
func splitEdgeLine(s string) (segments []string, ops []arrowOp) {
	var (
		depth    int
		quote    byte
		inPipe   bool
		segStart int
	)

	i := 0
	for i < len(s) {
		c := s[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		// Only double quotes open a quoted region here; a bare apostrophe
		// (as in "it's") must not swallow the rest of the line.
		case c == '"':
			quote = c
		case c == '[' || c == '(' || c == '{':
			depth++
		case c == ']' || c == ')' || c == '}':
			depth--
		case c == '|' && depth == 0:
			inPipe = !inPipe
		case depth == 0 && !inPipe:
			if op, ok := matchOp(s[i:]); ok {
				segments = append(segments, s[segStart:i])
				ops = append(ops, op)
				i += len(op.Token)
				segStart = i
				continue
			}
		}
		i++
	}
	segments = append(segments, s[segStart:])
	return segments, ops
}

func matchOp(s string) (arrowOp, bool) {
	for _, op := range arrowOps {
		if strings.HasPrefix(s, op.Token) {
			return op, true
		}
	}
	return arrowOp{}, false
}

var (
	leadingPipeRe  = regexp.MustCompile(`^\|([^|]*)\|`)
	trailingPipeRe = regexp.MustCompile(`\|([^|]*)\|$`)
)

// stripPipeLabels removes a pipe-wrapped label from the ends of a segment.
// A leading label belongs to the operator before the segment, a trailing
// one to the operator after it.
func stripPipeLabels(seg string) (core, leading, trailing string) {
	core = strings.TrimSpace(seg)
	if m := leadingPipeRe.FindStringSubmatch(core); m != nil {
		leading = m[1]
		core = strings.TrimSpace(core[len(m[0]):])
	}
	if m := trailingPipeRe.FindStringSubmatch(core); m != nil {
		trailing = m[1]
		core = strings.TrimSpace(core[:len(core)-len(m[0])])
	}
	return core, leading, trailing
}
