package parser

import (
	"errors"
	"testing"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

func TestParseC4_SystemContext(t *testing.T) {
	g := mustParse(t, `C4Context
 title System Context
 Person(u,"User")
 System(s,"Banking")
 Rel(u, s, "Uses", "HTTPS")`)

	meta := g.Meta()
	if meta.Dialect != diagram.DialectC4Context {
		t.Errorf("Dialect = %q, want c4context", meta.Dialect)
	}
	if meta.Title != "System Context" {
		t.Errorf("Title = %q, want System Context", meta.Title)
	}
	if meta.Direction != diagram.DirectionTB {
		t.Errorf("Direction = %q, want TB", meta.Direction)
	}

	u, ok := g.Node("u")
	if !ok {
		t.Fatal("node u missing")
	}
	if u.C4Type != diagram.C4Person || u.Label != "User" {
		t.Errorf("u = %q/%q, want person/User", u.C4Type, u.Label)
	}
	if s, _ := g.Node("s"); s.C4Type != diagram.C4System {
		t.Errorf("s.C4Type = %q, want system", s.C4Type)
	}

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.Label != "Uses" || e.Technology != "HTTPS" || e.Kind != diagram.EdgeDirected {
		t.Errorf("edge = %+v, want Uses/HTTPS/directed", e)
	}
	if e.ID != "e-u-s-0" {
		t.Errorf("edge ID = %q, want e-u-s-0", e.ID)
	}
}

func TestParseC4_Boundaries(t *testing.T) {
	g := mustParse(t, `C4Context
Enterprise_Boundary(corp, "Corp") {
  Person(u, "User")
  System_Boundary(sys, "Core") {
    System(s, "Banking")
  }
}`)

	corp, ok := g.Subgraph("corp")
	if !ok {
		t.Fatal("boundary corp missing")
	}
	if corp.Boundary != diagram.BoundaryEnterprise {
		t.Errorf("corp.Boundary = %q, want enterprise", corp.Boundary)
	}

	sys, ok := g.Subgraph("sys")
	if !ok {
		t.Fatal("boundary sys missing")
	}
	if sys.Parent != "corp" {
		t.Errorf("sys.Parent = %q, want corp", sys.Parent)
	}
	if sys.Boundary != diagram.BoundarySystem {
		t.Errorf("sys.Boundary = %q, want system", sys.Boundary)
	}

	if n, _ := g.Node("u"); n.Parent != "corp" {
		t.Errorf("u.Parent = %q, want corp", n.Parent)
	}
	if n, _ := g.Node("s"); n.Parent != "sys" {
		t.Errorf("s.Parent = %q, want sys", n.Parent)
	}
	if len(corp.Children) != 1 || corp.Children[0] != "u" {
		t.Errorf("corp.Children = %v, want [u]", corp.Children)
	}
}

func TestParseC4_ForwardReference(t *testing.T) {
	g := mustParse(t, `C4Context
Rel(a, b, "calls")
Person(a, "A")
System(b, "B")`)

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestParseC4_UnknownElementRejected(t *testing.T) {
	_, err := Parse("C4Context\nPerson(u, \"User\")\nRel(u, ghost, \"calls\")")

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() = %v, want ParseError", err)
	}
	if perr.Line != 3 {
		t.Errorf("Line = %d, want 3", perr.Line)
	}
}

func TestParseC4_NodeVariants(t *testing.T) {
	tests := []struct {
		call string
		id   string
		want diagram.C4Type
	}{
		{`Person_Ext(p, "P")`, "p", diagram.C4PersonExt},
		{`System_Ext(s, "S")`, "s", diagram.C4SystemExt},
		{`SystemDb(db, "DB")`, "db", diagram.C4SystemDb},
		{`SystemQueue(q, "Q")`, "q", diagram.C4SystemQueue},
		{`Container(c, "C", "Go")`, "c", diagram.C4Container},
		{`ContainerDb(cdb, "CDB", "Postgres")`, "cdb", diagram.C4ContainerDb},
		{`ContainerQueue(cq, "CQ", "Kafka")`, "cq", diagram.C4ContainerQueue},
		{`Component(cmp, "CMP", "Go", "parses")`, "cmp", diagram.C4Component},
		{`Component_Ext(ce, "CE")`, "ce", diagram.C4ComponentExt},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			g := mustParse(t, "C4Context\n"+tt.call)
			n, ok := g.Node(tt.id)
			if !ok {
				t.Fatalf("node %q missing", tt.id)
			}
			if n.C4Type != tt.want {
				t.Errorf("C4Type = %q, want %q", n.C4Type, tt.want)
			}
		})
	}
}

func TestParseC4_ContainerArgs(t *testing.T) {
	g := mustParse(t, `C4Context
Container(api, "API", "Go", "handles requests")`)

	n, _ := g.Node("api")
	if n.Technology != "Go" {
		t.Errorf("Technology = %q, want Go", n.Technology)
	}
	if n.Description != "handles requests" {
		t.Errorf("Description = %q, want handles requests", n.Description)
	}
}

func TestParseC4_PersonDescription(t *testing.T) {
	g := mustParse(t, `C4Context
Person(u, "User", "a bank customer")`)

	if n, _ := g.Node("u"); n.Description != "a bank customer" {
		t.Errorf("Description = %q, want a bank customer", n.Description)
	}
}

func TestParseC4_RelationVariants(t *testing.T) {
	g := mustParse(t, `C4Context
Person(a, "A")
System(b, "B")
BiRel(a, b, "sync")
Rel_U(b, a, "reports")
Rel_Neighbor(a, b)`)

	edges := g.Edges()
	if len(edges) != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", len(edges))
	}
	if edges[0].Kind != diagram.EdgeBidirectional {
		t.Errorf("BiRel kind = %q, want bidirectional", edges[0].Kind)
	}
	if edges[1].Kind != diagram.EdgeDirected || edges[2].Kind != diagram.EdgeDirected {
		t.Error("Rel_* variants must stay plain directed edges")
	}
	if edges[1].From != "b" || edges[1].To != "a" {
		t.Errorf("Rel_U edge = %s->%s, want b->a", edges[1].From, edges[1].To)
	}
}

func TestParseC4_NamedArgs(t *testing.T) {
	g := mustParse(t, `C4Context
System(s, "Banking", $tags="core+money", $descr="the bank")`)

	n, _ := g.Node("s")
	if n.Description != "the bank" {
		t.Errorf("Description = %q, want the bank", n.Description)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "core" || n.Tags[1] != "money" {
		t.Errorf("Tags = %v, want [core money]", n.Tags)
	}
}

func TestParseC4_CommentsSkipped(t *testing.T) {
	g := mustParse(t, `C4Context
%% a comment
Person(u, "User")
not a macro call
System(s, "Banking")`)

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}
