package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts user-supplied monetary text into a float64. Both "."
// and "," are accepted as decimal separator. Unparsable input yields 0 so a
// single bad row never fails a whole aggregation.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a value with exactly two decimal places.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
