package lidrup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteral_VariableAndSign(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int32(5), Literal(5).Variable())
	assert.Equal(t, int32(5), Literal(-5).Variable())
	assert.Equal(t, int32(1), Literal(5).Sign())
	assert.Equal(t, int32(-1), Literal(-5).Sign())
}

func TestLiteral_Negate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Literal(-5), Literal(5).Negate())
	assert.Equal(t, Literal(5), Literal(-5).Negate())
}

func TestValidLiteral(t *testing.T) {
	t.Parallel()

	assert.False(t, validLiteral(0))
	assert.True(t, validLiteral(1))
	assert.True(t, validLiteral(-1))
	assert.True(t, validLiteral(int64(math.MaxInt32)-1))
	assert.True(t, validLiteral(int64(-math.MaxInt32)+1))
	assert.False(t, validLiteral(math.MaxInt32))
	assert.False(t, validLiteral(-math.MaxInt32))
	assert.False(t, validLiteral(int64(math.MaxInt32)+1))
	assert.False(t, validLiteral(int64(-math.MaxInt32)-1))
}
