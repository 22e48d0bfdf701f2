// Package render translates a semantic graph plus its visual state into
// flat records for an external canvas renderer.
//
// The translation is a pure mapping: it makes no semantic or layout
// decisions, and calling it repeatedly with the same inputs yields the
// same records. Subgraphs become container records with a "subgraph-"
// prefixed ID; edge endpoints pointing at subgraphs are rewritten to the
// prefixed form so the renderer resolves them to the container.
//
// The colors attached to records are presentation defaults chosen by
// deterministic palette indexing. Callers may replace them freely; nothing
// downstream reads them back.
package render
