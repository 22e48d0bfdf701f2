package parser

import (
	"errors"
	"testing"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

func mustParse(t *testing.T, source string) *diagram.Graph {
	t.Helper()
	g, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	return g
}

func edgeIDs(g *diagram.Graph) []string {
	ids := make([]string, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestParse_EmptySource(t *testing.T) {
	for _, source := range []string{"", "   \n\t\n"} {
		_, err := Parse(source)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q) = %v, want ParseError", source, err)
		}
		if perr.Line != 1 {
			t.Errorf("Line = %d, want 1", perr.Line)
		}
	}
}

func TestParseFlowchart_Linear(t *testing.T) {
	g := mustParse(t, "graph TD\nA[Start] --> B[Middle] --> C[End]")

	if dir := g.Meta().Direction; dir != diagram.DirectionTB {
		t.Errorf("Direction = %q, want TB", dir)
	}
	if g.SubgraphCount() != 0 {
		t.Errorf("SubgraphCount() = %d, want 0", g.SubgraphCount())
	}

	wantNodes := map[string]string{"A": "Start", "B": "Middle", "C": "End"}
	for id, label := range wantNodes {
		n, ok := g.Node(id)
		if !ok {
			t.Fatalf("node %q missing", id)
		}
		if n.Label != label {
			t.Errorf("node %s label = %q, want %q", id, n.Label, label)
		}
		if n.Shape != diagram.ShapeRect {
			t.Errorf("node %s shape = %q, want rect", id, n.Shape)
		}
	}

	ids := edgeIDs(g)
	want := []string{"e-A-B-0", "e-B-C-1"}
	if len(ids) != len(want) {
		t.Fatalf("edges = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("edge[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	for _, e := range g.Edges() {
		if e.Kind != diagram.EdgeDirected {
			t.Errorf("edge %s kind = %q, want directed", e.ID, e.Kind)
		}
	}
}

func TestParseFlowchart_LabeledBranch(t *testing.T) {
	g := mustParse(t, "graph TD\nA{Choice}\nA -->|yes| B[Ok]\nA -->|no| C[Fail]")

	if n, _ := g.Node("A"); n.Shape != diagram.ShapeDiamond {
		t.Errorf("A shape = %q, want diamond", n.Shape)
	}

	labels := map[string]string{}
	for _, e := range g.Edges() {
		labels[e.To] = e.Label
	}
	if labels["B"] != "yes" || labels["C"] != "no" {
		t.Errorf("edge labels = %v, want yes/no", labels)
	}
}

func TestParseFlowchart_Shapes(t *testing.T) {
	tests := []struct {
		def  string
		want diagram.NodeShape
	}{
		{"N[rect]", diagram.ShapeRect},
		{"N(round)", diagram.ShapeRound},
		{"N([stadium])", diagram.ShapeStadium},
		{"N((circle))", diagram.ShapeCircle},
		{"N{diamond}", diagram.ShapeDiamond},
		{"N", diagram.ShapeRect},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			g := mustParse(t, "graph TD\n"+tt.def)
			n, ok := g.Node("N")
			if !ok {
				t.Fatal("node N missing")
			}
			if n.Shape != tt.want {
				t.Errorf("shape = %q, want %q", n.Shape, tt.want)
			}
		})
	}
}

func TestParseFlowchart_Bidirectional(t *testing.T) {
	g := mustParse(t, "graph LR\nA <-> B")

	if dir := g.Meta().Direction; dir != diagram.DirectionLR {
		t.Errorf("Direction = %q, want LR", dir)
	}
	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	if edges[0].Kind != diagram.EdgeBidirectional {
		t.Errorf("kind = %q, want bidirectional", edges[0].Kind)
	}
}

func TestParseFlowchart_ReverseArrowStaysForward(t *testing.T) {
	// "<-" never reverses: the edge still runs first token to second.
	g := mustParse(t, "graph TD\nA <- B")

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	if edges[0].From != "A" || edges[0].To != "B" {
		t.Errorf("edge = %s->%s, want A->B", edges[0].From, edges[0].To)
	}
	if edges[0].Kind != diagram.EdgeDirected {
		t.Errorf("kind = %q, want directed", edges[0].Kind)
	}
}

func TestParseFlowchart_LegacyOperators(t *testing.T) {
	for _, op := range []string{"---", "-.-", "===", "...", "~", ":::", ":-:"} {
		t.Run(op, func(t *testing.T) {
			g := mustParse(t, "graph TD\nA "+op+" B")
			edges := g.Edges()
			if len(edges) != 1 {
				t.Fatalf("EdgeCount() = %d, want 1", len(edges))
			}
			if edges[0].Kind != diagram.EdgeDirected {
				t.Errorf("kind = %q, want directed", edges[0].Kind)
			}
		})
	}
}

func TestParseFlowchart_NestedSubgraphs(t *testing.T) {
	g := mustParse(t, `graph TB
 subgraph outer
  subgraph inner
   X --> Y
  end
  Z
 end`)

	outer, ok := g.Subgraph("outer")
	if !ok {
		t.Fatal("subgraph outer missing")
	}
	inner, ok := g.Subgraph("inner")
	if !ok {
		t.Fatal("subgraph inner missing")
	}

	if inner.Parent != "outer" {
		t.Errorf("inner.Parent = %q, want outer", inner.Parent)
	}
	if outer.Parent != "" {
		t.Errorf("outer.Parent = %q, want empty", outer.Parent)
	}

	for _, id := range []string{"X", "Y"} {
		if n, _ := g.Node(id); n.Parent != "inner" {
			t.Errorf("%s.Parent = %q, want inner", id, n.Parent)
		}
	}
	if n, _ := g.Node("Z"); n.Parent != "outer" {
		t.Errorf("Z.Parent = %q, want outer", n.Parent)
	}

	if len(inner.Children) != 2 || inner.Children[0] != "X" || inner.Children[1] != "Y" {
		t.Errorf("inner.Children = %v, want [X Y]", inner.Children)
	}
	if len(outer.Children) != 1 || outer.Children[0] != "Z" {
		t.Errorf("outer.Children = %v, want [Z]", outer.Children)
	}
}

func TestParseFlowchart_SubgraphTitles(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantID    string
		wantLabel string
	}{
		{"bare id", "subgraph grp", "grp", "grp"},
		{"bracket title", "subgraph grp [Group Title]", "grp", "Group Title"},
		{"attached bracket title", "subgraph grp[Group Title]", "grp", "Group Title"},
		{"quoted title after id", `subgraph grp "Group Title"`, "grp", "Group Title"},
		{"quoted title only", `subgraph "Just A Title"`, "just-a-title", "Just A Title"},
		// The unquoted tail swallows the leading id and slugs the whole
		// title into a fresh ID. Odd, but it is the documented behavior.
		{"bare tail with spaces", "subgraph grp extra words", "grp-extra-words", "grp extra words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, "graph TD\n"+tt.line+"\nend")
			s, ok := g.Subgraph(tt.wantID)
			if !ok {
				t.Fatalf("subgraph %q missing", tt.wantID)
			}
			if s.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", s.Label, tt.wantLabel)
			}
		})
	}
}

func TestParseFlowchart_SubgraphDirection(t *testing.T) {
	g := mustParse(t, "graph TB\nsubgraph s\ndirection LR\nA --> B\nend")

	s, _ := g.Subgraph("s")
	if s.Direction != diagram.DirectionLR {
		t.Errorf("Direction = %q, want LR", s.Direction)
	}
}

func TestParseFlowchart_EdgeToSubgraph(t *testing.T) {
	g := mustParse(t, "graph TB\nsubgraph grp\nX\nend\ngrp --> Y")

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	if edges[0].From != "grp" {
		t.Errorf("From = %q, want grp", edges[0].From)
	}
	if g.HasNode("grp") {
		t.Error("grp must stay a subgraph, not become a node")
	}
}

func TestParseFlowchart_EdgeBetweenSubgraphs(t *testing.T) {
	g := mustParse(t, `graph TB
subgraph s1
 A
end
subgraph s2
 B
end
s1 --> s2`)

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	if edges[0].From != "s1" || edges[0].To != "s2" {
		t.Errorf("edge = %s->%s, want s1->s2", edges[0].From, edges[0].To)
	}
	if g.HasNode("s1") || g.HasNode("s2") {
		t.Error("subgraph endpoints must not materialize as nodes")
	}
}

func TestParseFlowchart_LateDefinition(t *testing.T) {
	// B is referenced before its shape declaration; the definition scan
	// still applies the declared shape.
	g := mustParse(t, "graph TD\nA --> B\nB{Late}")

	if n, _ := g.Node("B"); n.Shape != diagram.ShapeDiamond || n.Label != "Late" {
		t.Errorf("B = %q/%q, want diamond/Late", n.Shape, n.Label)
	}
}

func TestParseFlowchart_DuplicateDeclaration(t *testing.T) {
	g := mustParse(t, `graph TB
subgraph s1
 A[First]
end
subgraph s2
 A[Second]
end`)

	n, _ := g.Node("A")
	if n.Label != "First" {
		t.Errorf("Label = %q, want First (first declaration wins)", n.Label)
	}
	if n.Parent != "s2" {
		t.Errorf("Parent = %q, want s2 (second declaration wins for position)", n.Parent)
	}

	s1, _ := g.Subgraph("s1")
	s2, _ := g.Subgraph("s2")
	if len(s1.Children) != 0 {
		t.Errorf("s1.Children = %v, want empty", s1.Children)
	}
	if len(s2.Children) != 1 || s2.Children[0] != "A" {
		t.Errorf("s2.Children = %v, want [A]", s2.Children)
	}
}

func TestParseFlowchart_EdgeLabels(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"pipe after arrow", "A -->|go| B"},
		{"pipe before arrow", "A |go|--> B"},
		{"inline text", "A -- go --> B"},
		{"inline dotted", "A -. go .-> B"},
		{"inline thick", "A == go ==> B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, "graph TD\n"+tt.line)
			edges := g.Edges()
			if len(edges) != 1 {
				t.Fatalf("EdgeCount() = %d, want 1", len(edges))
			}
			if edges[0].Label != "go" {
				t.Errorf("Label = %q, want go", edges[0].Label)
			}
		})
	}
}

func TestParseFlowchart_MultilineLabel(t *testing.T) {
	g := mustParse(t, "graph TD\nA[first\nsecond] --> B")

	if n, _ := g.Node("A"); n.Label != "first\nsecond" {
		t.Errorf("Label = %q, want first\\nsecond", n.Label)
	}
}

func TestParseFlowchart_CommentsAndNoiseSkipped(t *testing.T) {
	g := mustParse(t, `graph TD
%% a comment
A --> B
style A fill:#f00
!!! not a line
click A callback`)

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestParseFlowchart_StableAcrossParses(t *testing.T) {
	source := `graph TD
A[Start] --> B{Check}
B -->|ok| C
subgraph grp
 D --> E
end
C --> grp`

	g1 := mustParse(t, source)
	g2 := mustParse(t, source)

	ids1, ids2 := edgeIDs(g1), edgeIDs(g2)
	if len(ids1) != len(ids2) {
		t.Fatalf("edge counts differ: %d vs %d", len(ids1), len(ids2))
	}
	for i := range ids1 {
		if ids1[i] != ids2[i] {
			t.Errorf("edge[%d] differs: %q vs %q", i, ids1[i], ids2[i])
		}
	}

	n1, n2 := g1.Nodes(), g2.Nodes()
	if len(n1) != len(n2) {
		t.Fatalf("node counts differ")
	}
	for i := range n1 {
		if n1[i].ID != n2[i].ID {
			t.Errorf("node[%d] differs: %q vs %q", i, n1[i].ID, n2[i].ID)
		}
	}
}

func TestParseFlowchart_HeaderVariants(t *testing.T) {
	tests := []struct {
		source string
		want   diagram.Direction
	}{
		{"flowchart LR\nA --> B", diagram.DirectionLR},
		{"graph TD\nA --> B", diagram.DirectionTB},
		{"graph BT\nA --> B", diagram.DirectionBT},
		{"graph RL\nA --> B", diagram.DirectionRL},
		{"A --> B", diagram.DirectionTB}, // absent header
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			g := mustParse(t, tt.source)
			if got := g.Meta().Direction; got != tt.want {
				t.Errorf("Direction = %q, want %q", got, tt.want)
			}
		})
	}
}
