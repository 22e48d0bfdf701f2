package parser

import (
	"fmt"
	"strings"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

// ParseError reports a source document that could not be turned into a
// valid graph. Line is 1-based; 0 means the error is not attributable to a
// single line.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

// Parse detects the dialect of source and runs the matching parser.
//
// The returned graph satisfies the model invariants (see
// [diagram.Graph.Validate]); inputs that cannot be made to satisfy them are
// rejected with a [ParseError].
func Parse(source string) (*diagram.Graph, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{Line: 1, Reason: "empty source"}
	}

	var g *diagram.Graph
	var lines map[string]int
	switch Detect(source) {
	case diagram.DialectC4Context:
		g, lines = parseC4(source)
	default:
		g, lines = parseFlowchart(source)
	}
	return finish(g, lines)
}

// finish re-checks invariant I1 with line attribution, then runs the full
// model validation. The parsers create flowchart endpoints eagerly, so
// dangling endpoints can only come from C4 forward references that were
// never resolved.
func finish(g *diagram.Graph, lineOf map[string]int) (*diagram.Graph, error) {
	for _, e := range g.Edges() {
		for _, end := range [2]string{e.From, e.To} {
			if !g.HasNode(end) && !g.HasSubgraph(end) {
				return nil, &ParseError{
					Line:   lineOf[e.ID],
					Reason: fmt.Sprintf("relation %s references unknown element %q", e.ID, end),
				}
			}
		}
	}
	if err := g.Validate(); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	return g, nil
}
