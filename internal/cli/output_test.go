package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/vecsolve/internal/solver"
)

func foundResult() solver.Result {
	return solver.Result{
		Solution: solver.Solution{A: 80, B: 40},
		Found:    true,
		Stats:    solver.Stats{Candidates: 81, Batches: 20, ScalarChecks: 1},
		Solver:   "int",
		Width:    4,
		Duration: 3 * time.Millisecond,
	}
}

func TestFormatVerdict(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A=80 B=40", FormatVerdict(solver.Solution{A: 80, B: 40}, true))
	assert.Equal(t, "none", FormatVerdict(solver.Solution{A: 80, B: 40}, false))
	assert.Equal(t, "A=0 B=0", FormatVerdict(solver.Solution{}, true))
}

func TestDisplayResult(t *testing.T) {
	withNoColor(t)

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayResult(&buf, foundResult(), OutputConfig{Quiet: true})
		assert.Equal(t, "A=80 B=40\n", buf.String())
	})

	t.Run("found", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayResult(&buf, foundResult(), OutputConfig{})
		out := buf.String()
		assert.Contains(t, out, "Solver: int (width 4)")
		assert.Contains(t, out, "A = 80, B = 40")
		assert.Contains(t, out, "Duration: 3ms")
		assert.NotContains(t, out, "Candidates")
	})

	t.Run("none verbose", func(t *testing.T) {
		var buf bytes.Buffer
		res := foundResult()
		res.Found = false
		DisplayResult(&buf, res, OutputConfig{Verbose: true})
		out := buf.String()
		assert.Contains(t, out, "Solution: none")
		assert.Contains(t, out, "Candidates: 81  Batches: 20  Scalar checks: 1  Rejected hits: 0")
	})
}

func TestNewResultJSON(t *testing.T) {
	t.Parallel()

	rj := NewResultJSON(foundResult(), nil)
	require.NotNil(t, rj.A)
	require.NotNil(t, rj.B)
	assert.Equal(t, uint64(80), *rj.A)
	assert.Equal(t, uint64(40), *rj.B)
	assert.Empty(t, rj.Error)

	res := foundResult()
	res.Found = false
	rj = NewResultJSON(res, errors.New("boom"))
	assert.Nil(t, rj.A)
	assert.Equal(t, "boom", rj.Error)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rj))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "a")
	assert.Equal(t, false, decoded["found"])
	assert.Equal(t, "boom", decoded["error"])
}
