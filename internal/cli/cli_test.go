package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
)

// run executes the CLI against a private config directory.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config-dir", dir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildListAndVerify(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "build", "corners:0,1,2", "edges:0,1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "corners:0,1,2: depth")
	assert.Contains(t, out, "edges:0,1: depth")
	assert.FileExists(t, filepath.Join(dir, "tables", pdb.FileName("corners:0,1,2")))

	out, err = run(t, dir, "build", "corners:0,1,2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "already built")

	out, err = run(t, dir, "tables", "--stats")
	require.NoError(t, err, out)
	assert.Contains(t, out, "corners:0,1,2")
	assert.Contains(t, out, "edges:0,1")
	assert.Contains(t, out, "9,072")
	assert.Contains(t, out, "Mean")

	out, err = run(t, dir, "verify", "--samples", "0", "corners:0,1,2", "edges:0,1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ corners:0,1,2")
	assert.Contains(t, out, "✓ edges:0,1")

	require.NoError(t, os.Remove(filepath.Join(dir, "tables", pdb.FileName("edges:0,1"))))
	out, err = run(t, dir, "tables", "--prune")
	require.NoError(t, err, out)
	assert.Contains(t, out, "pruned edges:0,1")
}

func TestVerifyReportsDamage(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "build", "edges:0,1")
	require.NoError(t, err)

	path := filepath.Join(dir, "tables", pdb.FileName("edges:0,1"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)/2] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := run(t, dir, "verify", "edges:0,1")
	require.Error(t, err)
	assert.Contains(t, out, "✗ edges:0,1")
}

func TestSolveMovesAndHistory(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "solve", "--algorithm", "bfs", "R", "U")
	require.NoError(t, err, out)
	assert.Contains(t, out, "U' R'")
	assert.Contains(t, out, "Length: 2")

	out, err = run(t, dir, "history")
	require.NoError(t, err, out)
	assert.Contains(t, out, "bfs")
	assert.Contains(t, out, "R U")

	out, err = run(t, dir, "solve", "--algorithm", "iddfs", "--no-record", "F2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Length: 1")

	out, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "bfs"))
	assert.NotContains(t, out, "iddfs")

	out, err = run(t, dir, "history", "--summary")
	require.NoError(t, err, out)
	assert.Contains(t, out, "NODES/S")
	assert.Contains(t, out, "2.00")
}

func TestSolveFacelets(t *testing.T) {
	dir := t.TempDir()
	moves, err := cube.ParseMoves("F")
	require.NoError(t, err)
	f := cube.Solved().ApplyMoves(moves).Facelets().Compact()

	out, err := run(t, dir, "solve", "--algorithm", "bfs", "--facelets", f)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Solution: F'")
}

func TestScrambleFaceletsParse(t *testing.T) {
	out, err := run(t, t.TempDir(), "scramble", "--seed", "7", "-n", "12")
	require.NoError(t, err, out)

	var facelets string
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, "Facelets: "); ok {
			facelets = v
		}
	}
	require.Len(t, facelets, cube.NumFacelets)
	f, err := cube.ParseFacelets(facelets)
	require.NoError(t, err)
	_, err = cube.FromFacelets(f)
	assert.NoError(t, err)
}

func TestSolveErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "solve", "--algorithm", "bfs")
	assert.ErrorContains(t, err, "nothing to solve")

	_, err = run(t, dir, "solve", "--algorithm", "bfs", "--random", "3", "R")
	assert.Error(t, err)

	_, err = run(t, dir, "solve", "--algorithm", "bogo", "R")
	assert.ErrorContains(t, err, "unknown algorithm")

	_, err = run(t, dir, "solve", "R", "U")
	assert.ErrorContains(t, err, "gocube-solver build")

	_, err = run(t, dir, "solve", "--algorithm", "bfs", "R", "Q")
	assert.ErrorIs(t, err, cube.ErrInvalidNotation)
}
