package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

var (
	c4HeaderRe = regexp.MustCompile(`(?i)^c4context\s*$`)
	c4TitleRe  = regexp.MustCompile(`(?i)^title\s+(.+)$`)
	c4CallRe   = regexp.MustCompile(`^(\w+)\s*\((.*)\)\s*\{?\s*$`)
)

// c4NodeTypes maps macro names to node types.
var c4NodeTypes = map[string]diagram.C4Type{
	"Person":          diagram.C4Person,
	"Person_Ext":      diagram.C4PersonExt,
	"System":          diagram.C4System,
	"System_Ext":      diagram.C4SystemExt,
	"SystemDb":        diagram.C4SystemDb,
	"SystemQueue":     diagram.C4SystemQueue,
	"Container":       diagram.C4Container,
	"Container_Ext":   diagram.C4ContainerExt,
	"ContainerDb":     diagram.C4ContainerDb,
	"ContainerQueue":  diagram.C4ContainerQueue,
	"Component":       diagram.C4Component,
	"Component_Ext":   diagram.C4ComponentExt,
	"ComponentDb":     diagram.C4ComponentDb,
	"ComponentQueue":  diagram.C4ComponentQueue,
}

// c4BoundaryTypes maps boundary macro names to boundary types.
var c4BoundaryTypes = map[string]diagram.BoundaryType{
	"Enterprise_Boundary": diagram.BoundaryEnterprise,
	"System_Boundary":     diagram.BoundarySystem,
	"Container_Boundary":  diagram.BoundaryContainer,
	"Boundary":            diagram.BoundaryGeneric,
}

// c4RelCalls maps relation macro names to edge kinds. The directional
// suffixes are layout hints in the source dialect; they carry no meaning
// here and all collapse to a plain directed edge.
var c4RelCalls = map[string]diagram.EdgeKind{
	"Rel":          diagram.EdgeDirected,
	"BiRel":        diagram.EdgeBidirectional,
	"Rel_U":        diagram.EdgeDirected,
	"Rel_D":        diagram.EdgeDirected,
	"Rel_L":        diagram.EdgeDirected,
	"Rel_R":        diagram.EdgeDirected,
	"Rel_Up":       diagram.EdgeDirected,
	"Rel_Down":     diagram.EdgeDirected,
	"Rel_Left":     diagram.EdgeDirected,
	"Rel_Right":    diagram.EdgeDirected,
	"Rel_Back":     diagram.EdgeDirected,
	"Rel_Neighbor": diagram.EdgeDirected,
}

type c4Parser struct {
	g         *diagram.Graph
	stack     []string
	edgeCount int
	lineOf    map[string]int
}

// parseC4 parses a C4-Context document. The grammar is a flat sequence of
// macro calls plus braces for boundaries, one call per line; multi-line
// coalescing is not applied. Relations may reference elements declared
// later - invariant checking happens after the whole document is read.
func parseC4(source string) (*diagram.Graph, map[string]int) {
	p := &c4Parser{
		g:      diagram.New(diagram.Meta{Direction: diagram.DirectionTB, Dialect: diagram.DialectC4Context}),
		lineOf: make(map[string]int),
	}

	for i, raw := range strings.Split(source, "\n") {
		text := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if text == "" || strings.HasPrefix(text, "%%") {
			continue
		}
		p.parseLine(text, i+1)
	}
	return p.g, p.lineOf
}

func (p *c4Parser) parseLine(text string, num int) {
	switch {
	case c4HeaderRe.MatchString(text):
		return
	case text == "}":
		if len(p.stack) > 0 {
			p.stack = p.stack[:len(p.stack)-1]
		}
	default:
		if m := c4TitleRe.FindStringSubmatch(text); m != nil {
			p.g.SetTitle(cleanLabel(m[1]))
			return
		}
		m := c4CallRe.FindStringSubmatch(text)
		if m == nil {
			return // unrecognized line, skipped
		}
		name := m[1]
		args, named := splitC4Args(m[2])

		switch {
		case c4BoundaryTypes[name] != "":
			p.openBoundary(name, args)
		case c4NodeTypes[name] != "":
			p.addNode(name, args, named)
		default:
			if kind, ok := c4RelCalls[name]; ok {
				p.addRelation(kind, args, named, num)
			}
		}
	}
}

func (p *c4Parser) openBoundary(name string, args []string) {
	if len(args) == 0 {
		return
	}
	id := args[0]
	label := id
	if len(args) > 1 {
		label = cleanLabel(args[1])
	}

	if !p.g.HasSubgraph(id) {
		var parent string
		if len(p.stack) > 0 {
			parent = p.stack[len(p.stack)-1]
		}
		_ = p.g.AddSubgraph(diagram.Subgraph{
			ID:       id,
			Label:    label,
			Parent:   parent,
			Boundary: c4BoundaryTypes[name],
		})
	}
	p.stack = append(p.stack, id)
}

func (p *c4Parser) addNode(name string, args []string, named map[string]string) {
	if len(args) == 0 {
		return
	}
	t := c4NodeTypes[name]

	node := diagram.Node{
		ID:     args[0],
		Label:  args[0],
		Shape:  diagram.ShapeRect,
		C4Type: t,
	}
	if len(args) > 1 {
		node.Label = cleanLabel(args[1])
	}

	// Person and System families take (id, label, desc); the Container and
	// Component families take (id, label, tech, desc).
	switch {
	case strings.HasPrefix(string(t), "container") || strings.HasPrefix(string(t), "component"):
		if len(args) > 2 {
			node.Technology = cleanLabel(args[2])
		}
		if len(args) > 3 {
			node.Description = cleanLabel(args[3])
		}
	default:
		if len(args) > 2 {
			node.Description = cleanLabel(args[2])
		}
	}
	applyNamedArgs(&node.Description, &node.Technology, &node.Tags, named)

	if len(p.stack) > 0 {
		node.Parent = p.stack[len(p.stack)-1]
	}
	if err := p.g.AddNode(node); err != nil {
		return // duplicate declaration, first wins
	}
	if node.Parent != "" {
		if s, ok := p.g.Subgraph(node.Parent); ok {
			s.Children = append(s.Children, node.ID)
		}
	}
}

func (p *c4Parser) addRelation(kind diagram.EdgeKind, args []string, named map[string]string, num int) {
	if len(args) < 2 {
		return
	}
	edge := diagram.Edge{
		From: args[0],
		To:   args[1],
		Kind: kind,
	}
	if len(args) > 2 {
		edge.Label = cleanLabel(args[2])
	}
	if len(args) > 3 {
		edge.Technology = cleanLabel(args[3])
	}
	if len(args) > 4 {
		edge.Description = cleanLabel(args[4])
	}
	applyNamedArgs(&edge.Description, &edge.Technology, &edge.Tags, named)

	edge.ID = fmt.Sprintf("e-%s-%s-%d", edge.From, edge.To, p.edgeCount)
	p.edgeCount++
	_ = p.g.AddEdge(edge)
	p.lineOf[edge.ID] = num
}

// applyNamedArgs folds $-prefixed named arguments ($descr, $techn, $tags)
// into the target fields. Unknown names are ignored.
func applyNamedArgs(desc, tech *string, tags *[]string, named map[string]string) {
	if v, ok := named["descr"]; ok {
		*desc = cleanLabel(v)
	}
	if v, ok := named["techn"]; ok {
		*tech = cleanLabel(v)
	}
	if v, ok := named["tags"]; ok {
		*tags = strings.Split(cleanLabel(v), "+")
	}
}

// splitC4Args splits a macro argument list on commas outside quotes.
// Positional arguments are returned in order with surrounding quotes
// stripped; "$name=value" arguments are collected separately.
func splitC4Args(s string) (args []string, named map[string]string) {
	named = make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return nil, named
	}

	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "$") {
			if eq := strings.IndexByte(part, '='); eq > 0 {
				named[part[1:eq]] = strings.TrimSpace(part[eq+1:])
			}
			continue
		}
		args = append(args, stripQuotes(part))
	}
	return args, named
}
