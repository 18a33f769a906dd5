package suite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndRun(t *testing.T) {
	const doc = `{
	  "name": "basics",
	  "cases": [
	    {"expr": "1 - 2 - 3", "want": "(subtract (subtract 1 2) 3)"},
	    {"expr": "2 ^ 3 ^ 4", "want": "(power 2 (power 3 4))"},
	    {"expr": "f()", "want": "f()"},
	    {"expr": "1 + ", "wantError": true},
	    {"expr": "x * y"}
	  ]
	}`

	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "basics", s.Name)
	require.Len(t, s.Cases, 5)

	results := s.Run()
	require.Len(t, results, 5)
	for _, res := range results {
		assert.True(t, res.Passed, "case %q failed: got %q err %v", res.Case.Expr, res.Got, res.Err)
	}
}

func TestRunReportsFailures(t *testing.T) {
	s := &Suite{Cases: []Case{
		{Expr: "1 + 2", Want: "(subtract 1 2)"}, // wrong expectation
		{Expr: "1 + 2", WantError: true},        // parses fine
		{Expr: "1 + ", Want: "(add 1 2)"},       // parse error, none expected
	}}

	results := s.Run()
	require.Len(t, results, 3)

	assert.False(t, results[0].Passed)
	assert.Equal(t, "(add 1 2)", results[0].Got)

	assert.False(t, results[1].Passed)
	assert.NoError(t, results[1].Err)

	assert.False(t, results[2].Passed)
	assert.Error(t, results[2].Err)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	_, err := Load(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoadValidatesSchema(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing cases",
			doc:  `{"name": "empty"}`,
		},
		{
			name: "empty cases array",
			doc:  `{"cases": []}`,
		},
		{
			name: "case without expr",
			doc:  `{"cases": [{"want": "(add 1 2)"}]}`,
		},
		{
			name: "unknown case field",
			doc:  `{"cases": [{"expr": "1", "wnat": "1"}]}`,
		},
		{
			name: "empty expression",
			doc:  `{"cases": [{"expr": ""}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid suite file")
		})
	}
}
