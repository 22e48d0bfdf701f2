// Package parser turns diagram source text into a semantic [diagram.Graph].
//
// Two dialects are supported, selected by [Detect]: Mermaid-style
// flowcharts and C4-Context. The dialects share the output model but
// diverge entirely in tokenization, so each has its own parser; there is
// deliberately no unified grammar.
//
// Both parsers are tolerant: unrecognizable lines are skipped and the rest
// of the document continues to parse. The only hard failure is a source
// that produces a graph violating the model invariants (for example a C4
// relation naming an element that never appears); those are reported as
// [ParseError] with the offending line.
//
// Identifier stability is part of the contract: node and subgraph IDs
// derive from the source text, and edge IDs are synthesized as
// "e-{from}-{to}-{index}" with a document-wide monotone index, so two
// parses of the same text always yield identical key sets.
package parser
