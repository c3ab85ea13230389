package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	ref := time.Date(2025, time.March, 14, 15, 9, 26, 0, time.Local)
	start, end := DayBounds(ref)
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, time.March, 14, 23, 59, 59, int(999*time.Millisecond), time.Local), end)
}

func TestMonthBounds(t *testing.T) {
	ref := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.Local)
	start, end := MonthBounds(ref)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, 0, time.Local), end)
}

func TestMonthBoundsDecemberWrapsYear(t *testing.T) {
	ref := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.Local)
	start, end := MonthBounds(ref)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local), end)
	assert.True(t, end.Before(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)))
}

func TestMonthBoundsLeapFebruary(t *testing.T) {
	ref := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.Local)
	_, end := MonthBounds(ref)
	assert.Equal(t, 29, end.Day())
}
