package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"50.30", 50.30},
		{"50,30", 50.30},
		{" 120.5 ", 120.5},
		{"0", 0},
		{"abc", 0},
		{"", 0},
		{"12,0", 12.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAmount(tc.in), "input %q", tc.in)
	}
}

func TestFormatAmountTwoDecimals(t *testing.T) {
	assert.Equal(t, "50.30", FormatAmount(50.3))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "120.50", FormatAmount(120.5))
	assert.Equal(t, "1000.00", FormatAmount(1000))
}
