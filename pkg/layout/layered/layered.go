package layered

import "sort"

// Direction is the rank direction of a layout run.
type Direction string

const (
	DirTB Direction = "TB"
	DirBT Direction = "BT"
	DirLR Direction = "LR"
	DirRL Direction = "RL"
)

// Node is one vertex to lay out, sized by the caller.
type Node struct {
	ID   string
	W, H float64
}

// Edge is a directed connection between two vertices. Weight biases the
// crossing-reduction ordering; callers aggregating multiple underlying
// edges into one pass the multiplicity here. Zero means weight one.
type Edge struct {
	From, To string
	Weight   float64
}

// Options configures one layout run.
type Options struct {
	Direction Direction
	NodeSep   float64 // separation between neighbors within a rank
	RankSep   float64 // separation between consecutive ranks
}

// Point is a vertex center in the caller's coordinate system.
type Point struct {
	X, Y float64
}

// sweeps is the number of barycenter ordering passes. Two down/up rounds
// are enough for the graph sizes diagrams produce.
const sweeps = 4

// Layout computes a center position for every node. Edges referencing
// unknown IDs and self loops are ignored. The origin is the top-left of
// the occupied bounding box.
func Layout(nodes []Node, edges []Edge, opts Options) map[string]Point {
	if len(nodes) == 0 {
		return map[string]Point{}
	}
	if opts.Direction == "" {
		opts.Direction = DirTB
	}

	g := build(nodes, edges)
	g.breakCycles()
	g.assignRanks()
	orders := g.orderRanks()
	return g.coordinates(orders, opts)
}

type graph struct {
	nodes []Node
	index map[string]int // ID -> position in nodes

	out [][]int // adjacency by node index, acyclic after breakCycles
	in  [][]int
	wt  map[[2]int]float64

	rank []int
}

func build(nodes []Node, edges []Edge) *graph {
	g := &graph{
		nodes: nodes,
		index: make(map[string]int, len(nodes)),
		out:   make([][]int, len(nodes)),
		in:    make([][]int, len(nodes)),
		wt:    make(map[[2]int]float64),
		rank:  make([]int, len(nodes)),
	}
	for i, n := range nodes {
		g.index[n.ID] = i
	}
	for _, e := range edges {
		from, okF := g.index[e.From]
		to, okT := g.index[e.To]
		if !okF || !okT || from == to {
			continue
		}
		w := e.Weight
		if w == 0 {
			w = 1
		}
		g.out[from] = append(g.out[from], to)
		g.in[to] = append(g.in[to], from)
		g.wt[[2]int{from, to}] += w
	}
	return g
}

// breakCycles removes back edges found by a depth-first sweep in input
// order, leaving an acyclic adjacency for ranking.
func (g *graph) breakCycles() {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(g.nodes))
	var back [][2]int

	var dfs func(v int)
	dfs = func(v int) {
		color[v] = gray
		for _, w := range g.out[v] {
			switch color[w] {
			case white:
				dfs(w)
			case gray:
				back = append(back, [2]int{v, w})
			}
		}
		color[v] = black
	}
	for v := range g.nodes {
		if color[v] == white {
			dfs(v)
		}
	}

	for _, e := range back {
		g.removeEdge(e[0], e[1])
	}
}

func (g *graph) removeEdge(from, to int) {
	g.out[from] = deleteFirst(g.out[from], to)
	g.in[to] = deleteFirst(g.in[to], from)
}

func deleteFirst(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// assignRanks runs a longest-path layering via topological traversal: each
// vertex lands one rank below its deepest parent, sources at rank zero.
func (g *graph) assignRanks() {
	inDegree := make([]int, len(g.nodes))
	var queue []int
	for v := range g.nodes {
		inDegree[v] = len(g.in[v])
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range g.out[curr] {
			if r := g.rank[curr] + 1; r > g.rank[child] {
				g.rank[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
}

// orderRanks seeds each rank with input order and runs alternating
// down/up barycenter sweeps. A vertex with no neighbors in the fixed rank
// keeps its current position.
func (g *graph) orderRanks() [][]int {
	maxRank := 0
	for _, r := range g.rank {
		if r > maxRank {
			maxRank = r
		}
	}
	orders := make([][]int, maxRank+1)
	for v := range g.nodes {
		orders[g.rank[v]] = append(orders[g.rank[v]], v)
	}

	for s := 0; s < sweeps; s++ {
		if s%2 == 0 {
			for r := 1; r <= maxRank; r++ {
				g.reorder(orders, r, r-1, g.in)
			}
		} else {
			for r := maxRank - 1; r >= 0; r-- {
				g.reorder(orders, r, r+1, g.out)
			}
		}
	}
	return orders
}

// reorder sorts orders[rank] by the weighted barycenter of each vertex's
// neighbors in the fixed rank. The sort is stable, so ties keep the
// previous order.
func (g *graph) reorder(orders [][]int, rank, fixed int, adj [][]int) {
	pos := make(map[int]int, len(orders[fixed]))
	for i, v := range orders[fixed] {
		pos[v] = i
	}

	bary := make(map[int]float64, len(orders[rank]))
	for i, v := range orders[rank] {
		var sum, weight float64
		for _, n := range adj[v] {
			p, ok := pos[n]
			if !ok {
				continue
			}
			w := g.wt[[2]int{v, n}] + g.wt[[2]int{n, v}]
			sum += float64(p) * w
			weight += w
		}
		if weight == 0 {
			bary[v] = float64(i)
		} else {
			bary[v] = sum / weight
		}
	}

	sort.SliceStable(orders[rank], func(a, b int) bool {
		return bary[orders[rank][a]] < bary[orders[rank][b]]
	})
}

// coordinates assigns centers: ranks stack along the main axis, vertices
// within a rank line up along the cross axis, and every rank is centered
// against the widest one.
func (g *graph) coordinates(orders [][]int, opts Options) map[string]Point {
	horizontal := opts.Direction == DirLR || opts.Direction == DirRL

	cross := func(n Node) float64 {
		if horizontal {
			return n.H
		}
		return n.W
	}
	main := func(n Node) float64 {
		if horizontal {
			return n.W
		}
		return n.H
	}

	// Per-rank cross extents.
	rankCross := make([]float64, len(orders))
	maxCross := 0.0
	for r, row := range orders {
		var w float64
		for i, v := range row {
			if i > 0 {
				w += opts.NodeSep
			}
			w += cross(g.nodes[v])
		}
		rankCross[r] = w
		if w > maxCross {
			maxCross = w
		}
	}

	// Per-rank main extents and offsets.
	rankMain := make([]float64, len(orders))
	for r, row := range orders {
		for _, v := range row {
			if m := main(g.nodes[v]); m > rankMain[r] {
				rankMain[r] = m
			}
		}
	}
	offsets := make([]float64, len(orders))
	totalMain := 0.0
	for r := range orders {
		offsets[r] = totalMain
		totalMain += rankMain[r]
		if r < len(orders)-1 {
			totalMain += opts.RankSep
		}
	}

	centers := make(map[string]Point, len(g.nodes))
	for r, row := range orders {
		c := (maxCross - rankCross[r]) / 2
		m := offsets[r] + rankMain[r]/2
		for _, v := range row {
			n := g.nodes[v]
			cc := c + cross(n)/2
			centers[n.ID] = orient(cc, m, totalMain, opts.Direction)
			c += cross(n) + opts.NodeSep
		}
	}
	return centers
}

// orient maps abstract (cross, main) coordinates into x/y for the rank
// direction. The main axis grows top-down for TB, bottom-up for BT,
// rightwards for LR, and leftwards for RL.
func orient(cross, main, totalMain float64, dir Direction) Point {
	switch dir {
	case DirBT:
		return Point{X: cross, Y: totalMain - main}
	case DirLR:
		return Point{X: main, Y: cross}
	case DirRL:
		return Point{X: totalMain - main, Y: cross}
	default:
		return Point{X: cross, Y: main}
	}
}
