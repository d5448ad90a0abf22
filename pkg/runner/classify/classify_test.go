package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/printers"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestClassifyPretty(t *testing.T) {
	out := &bytes.Buffer{}
	r := Classify{Text: "const x = 1;\nfunction f() {}", Out: out}
	require.NoError(t, r.Do(context.Background()))

	assert.Equal(t, "kind: fenced-code\nlanguage: javascript\n---\n```javascript\nconst x = 1;\nfunction f() {}\n```\n", out.String())
}

func TestClassifyJSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := Classify{Text: "just words", Format: printers.FormatJSON, Out: out}
	require.NoError(t, r.Do(context.Background()))

	var got classify.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, classify.Result{Kind: classify.KindPlain, Output: "just words"}, got)
}

func TestClassifyLanguages(t *testing.T) {
	out := &bytes.Buffer{}
	r := Classify{Languages: true, Out: out}
	require.NoError(t, r.Do(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(classify.Languages()))
	assert.Equal(t, "1. javascript", lines[0])
}

func TestClassifyLanguagesJSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := Classify{Languages: true, Format: printers.FormatJSON, Out: out}
	require.NoError(t, r.Do(context.Background()))

	var got []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, classify.Languages(), got)
}
