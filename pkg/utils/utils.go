package utils

import (
	"fmt"
	"math"
)

// BytesToHuman renders a byte count for log and report lines.
func BytesToHuman(num float64) string {
	for _, unit := range []string{"", "K", "M", "G"} {
		if math.Abs(num) < 1024.0 {
			return fmt.Sprintf("%3.1f%sB", num, unit)
		}

		num /= 1024.0
	}

	return fmt.Sprintf("%3.1fTB", num)
}
