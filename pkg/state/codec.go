package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mwetzel/flowcanvas/pkg/diagram"
)

// stateSchemaJSON validates the persisted layout format. It is strict
// about the types of recognized keys but leaves additional properties
// open: unknown keys are dropped by decoding, not rejected.
const stateSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://flowcanvas.dev/schemas/visual-state.json",
  "type": "object",
  "properties": {
    "nodes": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "position": { "$ref": "#/$defs/point" },
          "size": { "$ref": "#/$defs/size" },
          "locked": { "type": "boolean" }
        }
      }
    },
    "edges": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "bendPoints": {
            "type": "array",
            "items": { "$ref": "#/$defs/point" }
          }
        }
      }
    },
    "subgraphs": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "position": { "$ref": "#/$defs/point" },
          "size": { "$ref": "#/$defs/size" },
          "locked": { "type": "boolean" }
        }
      }
    },
    "viewport": {
      "type": "object",
      "properties": {
        "zoom": { "type": "number" },
        "pan": { "$ref": "#/$defs/point" }
      }
    }
  },
  "$defs": {
    "point": {
      "type": "object",
      "properties": {
        "x": { "type": "number" },
        "y": { "type": "number" }
      }
    },
    "size": {
      "type": "object",
      "properties": {
        "width": { "type": "number" },
        "height": { "type": "number" }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(stateSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("visual-state.json", doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile("visual-state.json")
	})
	return schema, schemaErr
}

// Marshal encodes a visual state as indented JSON.
func Marshal(s *VisualState) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal decodes a persisted visual state. The document is first
// validated against the embedded schema, so a malformed entry fails loudly
// instead of decoding to a zero value; unknown keys pass validation and
// are dropped by the decode.
func Unmarshal(data []byte) (*VisualState, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var s VisualState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	s.init()
	return &s, nil
}

// Prune drops entries that reference IDs missing from the graph. Persisted
// states routinely outlive edits to the source text; stale entries are
// ignored rather than reported.
func (s *VisualState) Prune(g *diagram.Graph) {
	for id := range s.Nodes {
		if !g.HasNode(id) {
			delete(s.Nodes, id)
		}
	}
	for id := range s.Edges {
		if _, ok := g.Edge(id); !ok {
			delete(s.Edges, id)
		}
	}
	for id := range s.Subgraphs {
		if !g.HasSubgraph(id) {
			delete(s.Subgraphs, id)
		}
	}
}
