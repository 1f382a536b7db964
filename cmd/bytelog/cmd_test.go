package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs rootCmd with the given args, capturing stdout. Each call
// passes its own --config pointing at a file that doesn't exist so
// PersistentPreRunE always falls back to config.Default(), and clears the
// --format flag's variable, so no call picks up state a previous test left
// behind.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	format = ""
	dir := t.TempDir()
	full := append([]string{"--config", filepath.Join(dir, "missing.yaml")}, args...)

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(full)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bytelog")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const closureSrc = `
REL parent
REL ancestor
FACT parent a b
FACT parent b c
RULE ancestor: SCAN parent, EMIT ancestor $0 $1
RULE ancestor: SCAN parent, JOIN ancestor $1, EMIT ancestor $0 $2
SOLVE
QUERY ancestor a ?
`

func TestRunCommandPrintsEmbeddedQuery(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ancestor:")
	assert.Contains(t, out, "(a, b)")
	assert.Contains(t, out, "(a, c)")
}

func TestRunCommandJSONFormat(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "--format", "json", "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"relation": "ancestor"`)
	assert.Contains(t, out, `"pairs"`)
	assert.Contains(t, out, `"b"`)
}

func TestRunCommandHonorsConfiguredMaxIterations(t *testing.T) {
	// A max_iterations ceiling too low for the program's actual chain length
	// must surface as an error, proving config.Config.MaxIterations reaches
	// the fixpoint driver rather than sitting unread.
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bytelog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_iterations: 1\n"), 0o644))

	path := writeProgram(t, closureSrc)

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--config", cfgPath, "run", path})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iteration cap")
}

func TestRunCommandMissingFile(t *testing.T) {
	_, err := execRoot(t, "run", filepath.Join(t.TempDir(), "nope.bytelog"))
	require.Error(t, err)
}

func TestRunCommandParseError(t *testing.T) {
	path := writeProgram(t, "REL foo\nFACT foo\n")
	_, err := execRoot(t, "run", path)
	require.Error(t, err)
}

func TestQueryCommandAdHocLookup(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "query", path, "ancestor", "b", "?")
	require.NoError(t, err)
	assert.Contains(t, out, "(b, c)")
	assert.NotContains(t, out, "(a,")
}

func TestQueryCommandWildcardBoth(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "query", path, "parent", "?", "?")
	require.NoError(t, err)
	assert.Contains(t, out, "(a, b)")
	assert.Contains(t, out, "(b, c)")
}

func TestQueryCommandUnknownRelationIsEmptyNotError(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "query", path, "nosuchrel", "?", "?")
	require.NoError(t, err)
	assert.Contains(t, out, "(no results)")
}

func TestQueryCommandUnknownAtomIsEmptyNotError(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "query", path, "ancestor", "nosuchatom", "?")
	require.NoError(t, err)
	assert.Contains(t, out, "(no results)")
}

func TestCheckCommandValidProgram(t *testing.T) {
	path := writeProgram(t, closureSrc)

	out, err := execRoot(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: program compiles.")
	assert.Contains(t, out, "Relations declared:")
}

func TestCheckCommandRejectsEmitTargetMismatch(t *testing.T) {
	// A RULE whose EMIT target mismatches its own declared rule target is a
	// compile-time rejection, so check must fail on it even though the
	// program has no SOLVE.
	src := `
REL foo
REL bar
FACT foo a b
RULE bar: SCAN foo, EMIT foo $0 $1
`
	path := writeProgram(t, src)

	_, err := execRoot(t, "check", path)
	require.Error(t, err)
}

func TestCheckCommandRejectsBadRule(t *testing.T) {
	// A rule body must open with a bare SCAN (spec §4.3); opening with JOIN
	// is a compile-time rejection.
	src := `
REL foo
FACT foo a b
RULE foo: JOIN foo $0, EMIT foo $0 $1
`
	path := writeProgram(t, src)

	_, err := execRoot(t, "check", path)
	require.Error(t, err)
}
