package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/introscore/internal/scoring"
)

const arjun = "Hello everyone, my name is Arjun. I am 13 years old studying in class 8 at Riverdale School. " +
	"I love playing cricket and my dream is to become a data scientist. " +
	"A fun fact about me is that I collect old coins. Thank you."

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENABLE_SEMANTIC", "")
	t.Setenv("EMBEDDING_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "score", "rubric"})
	assert.True(t, cmd.SilenceUsage)
}

func TestScore_Stdin(t *testing.T) {
	out, err := run(t, arjun, "score", "--no-grammar", "--duration", "50")
	require.NoError(t, err)

	var res scoring.EvaluationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 100.0, res.MaxTotal)
	assert.Equal(t, "2.1.1-lite", res.Version)
	require.NotNil(t, res.WPM)
	require.NotNil(t, res.Extracted.Name)
	assert.Equal(t, "Arjun", *res.Extracted.Name)
	assert.Len(t, res.Metrics, 9)
}

func TestScore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.txt")
	require.NoError(t, os.WriteFile(path, []byte(arjun), 0o644))

	out, err := run(t, "", "score", "--no-grammar", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"speech_rate"`)
	assert.Contains(t, out, `"wpm": null`)
}

func TestScore_Rejects(t *testing.T) {
	_, err := run(t, "   ", "score", "--no-grammar")
	require.ErrorIs(t, err, scoring.ErrEmptyTranscript)

	_, err = run(t, "too short to score", "score", "--no-grammar")
	require.ErrorIs(t, err, scoring.ErrTranscriptTooShort)

	_, err = run(t, arjun, "score", "--no-grammar", "--duration", "-3")
	require.ErrorContains(t, err, "--duration")

	_, err = run(t, "", "score", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorContains(t, err, "reading transcript")
}

func TestRubric_ConvertShowScore(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join("..", "..", "rubric_samples", "rubric.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rubric.json"), src, 0o644))

	out, err := run(t, "", "rubric", "show", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"criteria"`)

	out, err = run(t, arjun, "rubric", "score", "--dir", dir)
	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.EqualValues(t, 44, resp["word_count"])
	assert.NotEmpty(t, resp["criteria"])

	_, err = run(t, "", "rubric", "convert", "--dir", dir)
	require.Error(t, err)
}
