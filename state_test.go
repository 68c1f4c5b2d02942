package lidrup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runChecker(t *testing.T, interaction, proof string, opts Options) error {
	t.Helper()

	var interactionLexer *Lexer
	if interaction != "" {
		interactionLexer = NewLexer("interaction", strings.NewReader(interaction))
	}
	proofLexer := NewLexer("proof", strings.NewReader(proof))
	stats := NewStats()
	checker := NewChecker(interactionLexer, proofLexer, opts, stats)
	return checker.Run()
}

func TestChecker_TwoStream_SatisfiableScenario(t *testing.T) {
	t.Parallel()

	interaction := "" +
		"p icnf\n" +
		"i 1 2 0\n" +
		"i -1 -2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 -2 0\n"

	proof := "" +
		"p lidrup\n" +
		"i 1 1 2 0\n" +
		"i 2 -1 -2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 -2 0\n"

	err := runChecker(t, interaction, proof, Options{})
	assert.NoError(t, err)
}

func TestChecker_TwoStream_RejectsMismatchedInput(t *testing.T) {
	t.Parallel()

	interaction := "" +
		"p icnf\n" +
		"i 1 2 0\n"

	proof := "" +
		"p lidrup\n" +
		"i 1 1 3 0\n"

	err := runChecker(t, interaction, proof, Options{})
	var cerr *CheckerError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ClassCheck, cerr.Class)
}

func TestChecker_TwoStream_UnsatisfiableScenario(t *testing.T) {
	t.Parallel()

	interaction := "" +
		"p icnf\n" +
		"i 1 0\n" +
		"i -1 0\n" +
		"q 0\n" +
		"s UNSATISFIABLE\n" +
		"u 0\n"

	proof := "" +
		"p lidrup\n" +
		"i 1 1 0\n" +
		"i 2 -1 0\n" +
		"l 3 0 1 2 0\n" +
		"q 0\n" +
		"s UNSATISFIABLE\n" +
		"u 0 3 0\n"

	err := runChecker(t, interaction, proof, Options{})
	assert.NoError(t, err)
}

func TestChecker_TwoStream_DynamicMidQueryInputClause(t *testing.T) {
	t.Parallel()

	interaction := "" +
		"p icnf\n" +
		"i 1 0\n" +
		"q 1 0\n" +
		"i 2 0\n" +
		"s SATISFIABLE\n" +
		"m 1 2 0\n"

	proof := "" +
		"p lidrup\n" +
		"i 1 1 0\n" +
		"q 1 0\n" +
		"i 2 2 0\n" +
		"s SATISFIABLE\n" +
		"m 1 2 0\n"

	err := runChecker(t, interaction, proof, Options{})
	assert.NoError(t, err)
}

func TestChecker_SingleFile_SatisfiableScenario(t *testing.T) {
	t.Parallel()

	proof := "" +
		"p lidrup\n" +
		"i 1 1 2 0\n" +
		"i 2 -1 -2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 -2 0\n"

	err := runChecker(t, "", proof, Options{})
	assert.NoError(t, err)
}

func TestChecker_SingleFile_UnsatisfiableScenario(t *testing.T) {
	t.Parallel()

	proof := "" +
		"p lidrup\n" +
		"i 1 1 0\n" +
		"i 2 -1 0\n" +
		"l 3 0 1 2 0\n" +
		"q 0\n" +
		"s UNSATISFIABLE\n" +
		"u 0 3 0\n"

	err := runChecker(t, "", proof, Options{})
	assert.NoError(t, err)
}

func TestChecker_SingleFile_BadModelIsCheckError(t *testing.T) {
	t.Parallel()

	proof := "" +
		"p lidrup\n" +
		"i 1 1 2 0\n" +
		"q 0\n" +
		"s SATISFIABLE\n" +
		"m -1 -2 0\n"

	err := runChecker(t, "", proof, Options{})
	var cerr *CheckerError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ClassCheck, cerr.Class)
}

func TestChecker_RelaxedMode_SkipsMissingModel(t *testing.T) {
	t.Parallel()

	interaction := "" +
		"p icnf\n" +
		"i 1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 -2 0\n"

	// The proof omits its own `m` line for the query's conclusion entirely.
	proof := "" +
		"p lidrup\n" +
		"i 1 1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n"

	ilx := NewLexer("interaction", strings.NewReader(interaction))
	plx := NewLexer("proof", strings.NewReader(proof))
	stats := NewStats()
	checker := NewChecker(ilx, plx, Options{Mode: ModeRelaxed}, stats)
	err := checker.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RelaxedSkips)
}

func TestChecker_StrictMode_MissingModelIsParseError(t *testing.T) {
	t.Parallel()

	interaction := "" +
		"p icnf\n" +
		"i 1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n" +
		"m 1 -2 0\n"

	proof := "" +
		"p lidrup\n" +
		"i 1 1 2 0\n" +
		"q 1 0\n" +
		"s SATISFIABLE\n"

	err := runChecker(t, interaction, proof, Options{})
	var cerr *CheckerError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ClassParse, cerr.Class)
}

func TestChecker_PedanticMode_RequiresHeader(t *testing.T) {
	t.Parallel()

	interaction := "i 1 0\n"
	proof := "p lidrup\ni 1 1 0\n"

	err := runChecker(t, interaction, proof, Options{Mode: ModePedantic})
	var cerr *CheckerError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ClassParse, cerr.Class)
}

func TestChecker_StrictMode_HeaderOptional(t *testing.T) {
	t.Parallel()

	interaction := "i 1 0\n"
	proof := "i 1 1 0\n"

	err := runChecker(t, interaction, proof, Options{})
	assert.NoError(t, err)
}
