package savings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAmountAllowsZero(t *testing.T) {
	assert.True(t, ValidAmount(0))
	assert.True(t, ValidAmount(150.75))
	assert.False(t, ValidAmount(-1))
	assert.False(t, ValidAmount(math.NaN()))
	assert.False(t, ValidAmount(math.Inf(1)))
}

func TestValidDeltaRejectsZero(t *testing.T) {
	assert.False(t, ValidDelta(0))
	assert.False(t, ValidDelta(-10))
	assert.True(t, ValidDelta(0.01))
	assert.False(t, ValidDelta(math.NaN()))
}

func TestSubtractFloorsAtZero(t *testing.T) {
	assert.Equal(t, 70.0, Subtract(100, 30))
	assert.Equal(t, 0.0, Subtract(100, 100))
	assert.Equal(t, 0.0, Subtract(50, 200))
	assert.Equal(t, 0.0, Subtract(0, 1))
}

func TestProgress(t *testing.T) {
	p, defined := Progress(250, 1000)
	assert.True(t, defined)
	assert.Equal(t, 25, p)

	p, defined = Progress(333, 1000)
	assert.True(t, defined)
	assert.Equal(t, 33, p)

	// over-saving is capped for display
	p, defined = Progress(1500, 1000)
	assert.True(t, defined)
	assert.Equal(t, 100, p)

	// no goal: undefined, never a division by zero
	_, defined = Progress(500, 0)
	assert.False(t, defined)
}
