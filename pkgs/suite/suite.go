// Package suite runs golden expression suites: JSON files pairing input
// expressions with their expected tree renderings (or expected errors).
// Files are validated against a JSON Schema before anything is parsed,
// so a malformed suite fails fast with a schema error instead of a
// confusing mid-run failure.
package suite

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/prattle-dev/prattle/pkgs/parser"
)

// schemaJSON describes a valid suite file
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["cases"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "cases": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["expr"],
        "additionalProperties": false,
        "properties": {
          "expr": {"type": "string", "minLength": 1},
          "want": {"type": "string"},
          "wantError": {"type": "boolean"}
        }
      }
    }
  }
}`

var suiteSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	url := "schema://suite.json"
	if err := compiler.AddResource(url, strings.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		panic(err)
	}
	return schema
}

// Case is one expression with its expected outcome. Exactly one of
// Want or WantError should be set; a case with neither only checks
// that the expression parses.
type Case struct {
	Expr      string `json:"expr"`
	Want      string `json:"want,omitempty"`
	WantError bool   `json:"wantError,omitempty"`
}

// Suite is a named collection of cases
type Suite struct {
	Name  string `json:"name,omitempty"`
	Cases []Case `json:"cases"`
}

// Result is the outcome of running one case
type Result struct {
	Case   Case
	Got    string // rendered tree, empty if parsing failed
	Err    error  // parse error, nil if parsing succeeded
	Passed bool
}

// Load reads, schema-validates, and decodes a suite file
func Load(r io.Reader) (*Suite, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Validate against the schema first; jsonschema wants the document
	// decoded into plain interface{} values.
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := suiteSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid suite file: %w", err)
	}

	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run parses every case and checks it against its expectation
func (s *Suite) Run() []Result {
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		results = append(results, runCase(c))
	}
	return results
}

func runCase(c Case) Result {
	res := Result{Case: c}

	node, err := parser.Parse(c.Expr)
	if err != nil {
		res.Err = err
		res.Passed = c.WantError
		return res
	}

	res.Got = node.String()
	switch {
	case c.WantError:
		res.Passed = false
	case c.Want != "":
		res.Passed = res.Got == c.Want
	default:
		res.Passed = true
	}
	return res
}
