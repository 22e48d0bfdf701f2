package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

var (
	headerRe     = regexp.MustCompile(`(?i)^(?:flowchart|graph)\s+(TB|TD|BT|RL|LR)\b`)
	headerWordRe = regexp.MustCompile(`(?i)^(?:flowchart|graph)\b`)
	directionRe  = regexp.MustCompile(`(?i)^direction\s+(TB|TD|BT|RL|LR)\b`)
	subgraphRe   = regexp.MustCompile(`^subgraph\b`)
	nodeIDRe     = regexp.MustCompile(`^[\w.:-]+`)
)

// shapeDelims maps delimiter pairs to node shapes. Ordered so that a longer
// opener is tried before any opener that prefixes it.
var shapeDelims = []struct {
	Open, Close string
	Shape       diagram.NodeShape
}{
	{"((", "))", diagram.ShapeCircle},
	{"([", "])", diagram.ShapeStadium},
	{"[", "]", diagram.ShapeRect},
	{"{", "}", diagram.ShapeDiamond},
	{"(", ")", diagram.ShapeRound},
}

// nodeToken is one parsed node reference: a bare identifier or an
// identifier with an attached shape definition.
type nodeToken struct {
	ID       string
	Label    string
	Shape    diagram.NodeShape
	HasShape bool
}

// parseNodeToken parses a segment as a node reference. It fails when the
// segment is empty, starts with no identifier, or carries trailing text
// that is not a recognized shape.
func parseNodeToken(s string) (nodeToken, bool) {
	s = strings.TrimSpace(s)
	id := nodeIDRe.FindString(s)
	if id == "" {
		return nodeToken{}, false
	}
	rest := strings.TrimSpace(s[len(id):])
	if rest == "" {
		return nodeToken{ID: id}, true
	}
	for _, d := range shapeDelims {
		if strings.HasPrefix(rest, d.Open) && strings.HasSuffix(rest, d.Close) && len(rest) >= len(d.Open)+len(d.Close) {
			inner := rest[len(d.Open) : len(rest)-len(d.Close)]
			return nodeToken{ID: id, Label: cleanLabel(inner), Shape: d.Shape, HasShape: true}, true
		}
	}
	return nodeToken{}, false
}

type flowchartParser struct {
	g         *diagram.Graph
	defs      map[string]nodeToken // first definition wins
	stack     []string             // open subgraph IDs
	edgeCount int
	lineOf    map[string]int // edge ID -> source line
}

// parseFlowchart runs the two-pass flowchart parse: a definition scan that
// harvests explicit shapes document-wide, then a structural pass that
// builds subgraphs, nodes, and edges in appearance order.
func parseFlowchart(source string) (*diagram.Graph, map[string]int) {
	lines := preprocess(source)

	meta := diagram.Meta{Direction: diagram.DirectionTB, Dialect: diagram.DialectFlowchart}
	for _, ln := range lines {
		if m := headerRe.FindStringSubmatch(ln.Text); m != nil {
			meta.Direction = normalizeDirection(m[1])
			break
		}
	}

	p := &flowchartParser{
		g:      diagram.New(meta),
		defs:   make(map[string]nodeToken),
		lineOf: make(map[string]int),
	}

	p.scanDefinitions(lines)
	p.buildStructure(lines)
	return p.g, p.lineOf
}

func normalizeDirection(s string) diagram.Direction {
	s = strings.ToUpper(s)
	if s == "TD" {
		s = "TB"
	}
	return diagram.Direction(s)
}

// structural reports whether the line is consumed by the structural
// grammar rather than the node/edge grammar.
func structural(text string) bool {
	return headerWordRe.MatchString(text) ||
		subgraphRe.MatchString(text) ||
		text == "end" ||
		directionRe.MatchString(text)
}

// scanDefinitions walks every non-structural line and records the first
// explicit shape definition per node ID. A node defined late in the source
// but referenced early still gets its declared shape this way.
func (p *flowchartParser) scanDefinitions(lines []line) {
	for _, ln := range lines {
		if structural(ln.Text) {
			continue
		}
		segments, _ := splitEdgeLine(normalizeInlineLabels(ln.Text))
		for _, seg := range segments {
			core, _, _ := stripPipeLabels(seg)
			tok, ok := parseNodeToken(core)
			if !ok || !tok.HasShape {
				continue
			}
			if _, seen := p.defs[tok.ID]; !seen {
				p.defs[tok.ID] = tok
			}
		}
	}
}

func (p *flowchartParser) buildStructure(lines []line) {
	for _, ln := range lines {
		text := ln.Text
		switch {
		case headerWordRe.MatchString(text):
			continue
		case subgraphRe.MatchString(text):
			p.openSubgraph(ln)
		case text == "end":
			if len(p.stack) > 0 {
				p.stack = p.stack[:len(p.stack)-1]
			}
		case directionRe.MatchString(text):
			if len(p.stack) > 0 {
				m := directionRe.FindStringSubmatch(text)
				if s, ok := p.g.Subgraph(p.stack[len(p.stack)-1]); ok {
					s.Direction = normalizeDirection(m[1])
				}
			}
		default:
			p.parseContentLine(ln)
		}
	}
}

// openSubgraph parses a subgraph header and pushes the new container.
//
// Accepted forms: "subgraph id", "subgraph id [title]", `subgraph id "title"`,
// and `subgraph "title"` (ID becomes a slug of the title). A bare unquoted
// tail with spaces ("subgraph id title with spaces") takes the whole tail as
// the title and slugs it into a new ID that shadows the leading identifier;
// that matches the original grammar and is kept as is.
func (p *flowchartParser) openSubgraph(ln line) {
	tail := strings.TrimSpace(ln.Text[len("subgraph"):])

	var id, title string
	idPart := nodeIDRe.FindString(tail)
	rest := strings.TrimSpace(tail[len(idPart):])

	switch {
	case idPart == "" && tail != "":
		title = cleanLabel(tail)
		id = slug(title)
	case idPart == "":
		id = fmt.Sprintf("sg-%d", ln.Num)
	case rest == "":
		id, title = idPart, idPart
	case strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]"):
		id = idPart
		title = cleanLabel(rest[1 : len(rest)-1])
	case rest[0] == '"' || rest[0] == '\'':
		id = idPart
		title = cleanLabel(rest)
	default:
		title = cleanLabel(tail)
		id = slug(title)
	}
	if id == "" {
		id = fmt.Sprintf("sg-%d", ln.Num)
	}

	if !p.g.HasSubgraph(id) {
		var parent string
		if len(p.stack) > 0 {
			parent = p.stack[len(p.stack)-1]
		}
		_ = p.g.AddSubgraph(diagram.Subgraph{ID: id, Label: title, Parent: parent})
	}
	p.stack = append(p.stack, id)
}

// parseContentLine tries the edge grammar first and falls back to a
// standalone node declaration. Lines matching neither are skipped.
func (p *flowchartParser) parseContentLine(ln line) {
	segments, ops := splitEdgeLine(normalizeInlineLabels(ln.Text))
	if len(ops) == 0 {
		if tok, ok := parseNodeToken(strings.TrimSpace(ln.Text)); ok {
			p.declareNode(tok)
		}
		return
	}

	cores := make([]string, len(segments))
	leads := make([]string, len(segments))
	trails := make([]string, len(segments))
	for i, seg := range segments {
		cores[i], leads[i], trails[i] = stripPipeLabels(seg)
	}

	for i, op := range ops {
		from := p.endpoint(cores[i])
		to := p.endpoint(cores[i+1])
		if from == "" || to == "" {
			continue
		}
		label := trails[i]
		if label == "" {
			label = leads[i+1]
		}
		id := fmt.Sprintf("e-%s-%s-%d", from, to, p.edgeCount)
		p.edgeCount++
		_ = p.g.AddEdge(diagram.Edge{
			ID:    id,
			From:  from,
			To:    to,
			Label: cleanLabel(label),
			Kind:  op.Kind,
		})
		p.lineOf[id] = ln.Num
	}
}

// endpoint resolves one edge endpoint: a declared subgraph connects as
// itself, anything else is materialized as a node. Returns "" when the
// segment is not a valid node reference.
func (p *flowchartParser) endpoint(seg string) string {
	tok, ok := parseNodeToken(seg)
	if !ok {
		return ""
	}
	if p.g.HasSubgraph(tok.ID) {
		return tok.ID
	}
	if !p.g.HasNode(tok.ID) {
		p.createNode(tok)
	}
	return tok.ID
}

// declareNode handles a standalone declaration. A repeated declaration does
// not change the node's shape (first definition wins) but does move the
// node to the current container, taking the latest position in its child
// list.
func (p *flowchartParser) declareNode(tok nodeToken) {
	n, exists := p.g.Node(tok.ID)
	if !exists {
		p.createNode(tok)
		return
	}

	if n.Parent != "" {
		p.g.RemoveChild(n.Parent, n.ID)
	}
	n.Parent = ""
	if top := p.top(); top != "" {
		n.Parent = top
		if s, ok := p.g.Subgraph(top); ok {
			s.Children = append(s.Children, n.ID)
		}
	}
}

func (p *flowchartParser) createNode(tok nodeToken) {
	def, hasDef := p.defs[tok.ID]
	if !hasDef {
		def = tok
	}
	label := def.Label
	if label == "" {
		label = tok.ID
	}
	shape := def.Shape
	if shape == "" {
		shape = diagram.ShapeRect
	}

	node := diagram.Node{ID: tok.ID, Label: label, Shape: shape}
	if top := p.top(); top != "" {
		node.Parent = top
	}
	_ = p.g.AddNode(node)

	if node.Parent != "" {
		if s, ok := p.g.Subgraph(node.Parent); ok {
			s.Children = append(s.Children, node.ID)
		}
	}
}

func (p *flowchartParser) top() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}
