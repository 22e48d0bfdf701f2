package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

func sampleState() *VisualState {
	s := New()
	s.Nodes["a"] = NodeState{
		Position: Point{X: 10, Y: 20},
		Size:     &Size{Width: 80, Height: 40},
		Locked:   true,
	}
	s.Edges["e-a-b-0"] = EdgeState{BendPoints: []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	s.Subgraphs["grp"] = SubgraphState{
		Position: Point{X: 0, Y: 0},
		Size:     Size{Width: 300, Height: 200},
	}
	s.Viewport = &Viewport{Zoom: 0.75, Pan: Point{X: -5, Y: 8}}
	return s
}

func TestCodec_RoundTrip(t *testing.T) {
	original := sampleState()

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, original, decoded)
}

func TestUnmarshal_UnknownKeysDropped(t *testing.T) {
	doc := `{
		"nodes": {"a": {"position": {"x": 1, "y": 2}, "zIndex": 7}},
		"futureSection": {"anything": true}
	}`

	s, err := Unmarshal([]byte(doc))
	require.NoError(t, err)

	assert.Len(t, s.Nodes, 1)
	assert.Equal(t, Point{X: 1, Y: 2}, s.Nodes["a"].Position)
	assert.NotNil(t, s.Edges)
	assert.NotNil(t, s.Subgraphs)
}

func TestUnmarshal_TypeErrorsRejected(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string zoom", `{"viewport": {"zoom": "big"}}`},
		{"string coordinate", `{"nodes": {"a": {"position": {"x": "left", "y": 0}}}}`},
		{"bendPoints not array", `{"edges": {"e": {"bendPoints": 4}}}`},
		{"invalid json", `{"nodes":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestPrune(t *testing.T) {
	g := diagram.New(diagram.Meta{})
	g.AddNode(diagram.Node{ID: "a"})
	g.AddSubgraph(diagram.Subgraph{ID: "grp"})
	g.AddEdge(diagram.Edge{ID: "e-a-grp-0", From: "a", To: "grp"})

	s := New()
	s.Nodes["a"] = NodeState{}
	s.Nodes["stale"] = NodeState{}
	s.Edges["e-a-grp-0"] = EdgeState{}
	s.Edges["e-gone-0"] = EdgeState{}
	s.Subgraphs["grp"] = SubgraphState{}
	s.Subgraphs["oldgrp"] = SubgraphState{}

	s.Prune(g)

	assert.Equal(t, []string{"a"}, mapKeys(s.Nodes))
	assert.Equal(t, []string{"e-a-grp-0"}, mapKeys(s.Edges))
	assert.Equal(t, []string{"grp"}, mapKeys(s.Subgraphs))
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestFitViewport(t *testing.T) {
	t.Run("large content zooms out", func(t *testing.T) {
		vp := FitViewport(Point{X: 0, Y: 0}, Point{X: 4000, Y: 2000}, 1280, 800)
		assert.Less(t, vp.Zoom, 1.0)
		assert.Greater(t, vp.Zoom, 0.0)
	})

	t.Run("small content stays at 1", func(t *testing.T) {
		vp := FitViewport(Point{X: 0, Y: 0}, Point{X: 200, Y: 100}, 1280, 800)
		assert.Equal(t, 1.0, vp.Zoom)
	})

	t.Run("degenerate bounds", func(t *testing.T) {
		vp := FitViewport(Point{}, Point{}, 1280, 800)
		assert.Equal(t, 1.0, vp.Zoom)
		assert.Equal(t, Point{}, vp.Pan)
	})
}
