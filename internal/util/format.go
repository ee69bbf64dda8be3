package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSize renders a byte count with binary units, truncating (not
// rounding) to at most three decimals so a value never displays larger
// than it is.
func FormatSize(size int64) string {
	const unit = 1024
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}

	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div := int64(unit)
	exp := 0
	for n := size / unit; n >= unit && exp < len(units)-2; n /= unit {
		div *= unit
		exp++
	}

	if size%div == 0 {
		return fmt.Sprintf("%d %s", size/div, units[exp+1])
	}

	value := math.Floor(float64(size)/float64(div)*1000) / 1000
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return fmt.Sprintf("%s %s", s, units[exp+1])
}
