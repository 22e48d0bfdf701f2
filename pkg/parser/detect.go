package parser

import (
	"strings"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

// Detect returns the dialect of a source document by inspecting its first
// non-blank token, case-insensitively. Unknown headers default to
// flowchart.
func Detect(source string) diagram.Dialect {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		token := line
		if i := strings.IndexAny(token, " \t"); i >= 0 {
			token = token[:i]
		}
		if strings.EqualFold(token, "c4context") {
			return diagram.DialectC4Context
		}
		return diagram.DialectFlowchart
	}
	return diagram.DialectFlowchart
}
