package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	lidrup "github.com/arminbiere/lidrup-check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_NoProofStream(t *testing.T) {
	t.Parallel()

	r := New()
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoProofStream)
}

func TestRunner_SuccessPrintsVerifiedBanner(t *testing.T) {
	t.Parallel()

	proof := lidrup.NewLexer("proof", strings.NewReader(
		"p lidrup\n"+
			"i 1 1 0\n"+
			"q 0\n"+
			"s SATISFIABLE\n"+
			"m 1 0\n",
	))

	var stdout, stderr bytes.Buffer
	r := New(
		WithStreams(nil, proof),
		WithOutputs(&stdout, &stderr),
	)

	err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "verified")
}

func TestRunner_FailurePrintsCheckFailedBanner(t *testing.T) {
	t.Parallel()

	proof := lidrup.NewLexer("proof", strings.NewReader(
		"p lidrup\n"+
			"i 1 1 0\n"+
			"q 0\n"+
			"s SATISFIABLE\n"+
			"m -1 0\n",
	))

	var stdout, stderr bytes.Buffer
	r := New(
		WithStreams(nil, proof),
		WithOutputs(&stdout, &stderr),
	)

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "check failed")
}

func TestRunner_WithStatsAccumulates(t *testing.T) {
	t.Parallel()

	proof := lidrup.NewLexer("proof", strings.NewReader(
		"p lidrup\n"+
			"i 1 1 0\n"+
			"q 0\n"+
			"s SATISFIABLE\n"+
			"m 1 0\n",
	))

	var stdout, stderr bytes.Buffer
	stats := lidrup.NewStats()
	r := New(
		WithStreams(nil, proof),
		WithOutputs(&stdout, &stderr),
		WithStats(stats),
	)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, stats.InputClauses)
	assert.Equal(t, 1, stats.Queries)
}
