package lidrup

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_CountLine(t *testing.T) {
	t.Parallel()

	s := NewStats()
	s.countLine("proof")
	s.countLine("proof")
	s.countLine("interaction")

	assert.Equal(t, 2, s.LinesRead["proof"])
	assert.Equal(t, 1, s.LinesRead["interaction"])
}

func TestStats_WriteSummary(t *testing.T) {
	t.Parallel()

	s := NewStats()
	s.InputClauses = 3
	s.LearnedClauses = 2
	s.RUPChecks = 5
	s.RelaxedSkips = 1

	var buf bytes.Buffer
	s.WriteSummary(&buf)

	out := buf.String()
	assert.Contains(t, out, "input clauses")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "relaxed skips")
}

func TestStats_WriteSummary_OmitsRelaxedSkipsWhenZero(t *testing.T) {
	t.Parallel()

	s := NewStats()
	var buf bytes.Buffer
	s.WriteSummary(&buf)

	assert.NotContains(t, buf.String(), "relaxed skips")
}

func TestStats_Elapsed(t *testing.T) {
	t.Parallel()

	s := NewStats()
	assert.GreaterOrEqual(t, s.Elapsed(), time.Duration(0))
}
