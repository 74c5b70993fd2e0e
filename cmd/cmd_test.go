package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "s1.csv"), "s1,fish\n")
	writeFile(t, filepath.Join(dir, "a", "b", "s2.TextGrid"), "")
	writeFile(t, filepath.Join(dir, "a", "notes.txt"), "")

	got, err := expandInputs([]string{
		filepath.Join(dir, "**", "*"),
		filepath.Join(dir, "a", "s1.csv"),
		filepath.Join(dir, "a", "notes.txt"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "b", "s2.TextGrid"),
		filepath.Join(dir, "a", "s1.csv"),
		filepath.Join(dir, "a", "notes.txt"),
	}, got)

	got, err = expandInputs([]string{filepath.Join(dir, "missing.csv")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "missing.csv")}, got)
}

func testConfigFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "english.txt"), "fish fox fan\n")
	writeFile(t, filepath.Join(dir, "data", "cmudict.txt"), "FISH  F IH1 SH\nFOX  F AA1 K S\nFAN  F AE1 N\n")
	path := filepath.Join(dir, "vfclust.yaml")
	writeFile(t, path, `
log_level: warn
resources:
  data_dir: `+filepath.Join(dir, "data")+`
  english_words: english.txt
  phonetic_dict: cmudict.txt
`)
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config", "--config", testConfigFile(t), "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "log_level: warn")
	assert.Contains(t, out, "english_words: english.txt")
}

func TestScoreCommand(t *testing.T) {
	conf := testConfigFile(t)
	in := filepath.Join(t.TempDir(), "s1.csv")
	writeFile(t, in, "s1,fish,fan,fox\n")
	outDir := t.TempDir()

	out, err := run(t, "score", "--config", conf, "-q", "-p", "f", "-o", outDir, "--format", "json", in)
	require.NoError(t, err)
	want := filepath.Join(outDir, "s1_vfclust_phonemic_f.json")
	assert.Equal(t, want, strings.TrimSpace(out))
	assert.FileExists(t, want)
}

func TestScoreCommandErrors(t *testing.T) {
	conf := testConfigFile(t)
	in := filepath.Join(t.TempDir(), "s1.csv")
	writeFile(t, in, "s1,fish\n")

	_, err := run(t, "score", "--config", conf, "-q", "-p", "f", "-s", "animals", in)
	assert.ErrorContains(t, err, "not both")

	bad := filepath.Join(t.TempDir(), "s2.doc")
	writeFile(t, bad, "s2,fish\n")
	_, err = run(t, "score", "--config", conf, "-q", "-p", "f", in, bad)
	assert.ErrorContains(t, err, "1 of 2 responses failed")
}
