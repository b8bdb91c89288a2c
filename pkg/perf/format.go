package perf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMs renders milliseconds rounded to an integer with thousands
// separators, e.g. "1,234 ms". NaN and infinities render as "—".
func FormatMs(ms float64) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return "—"
	}
	return groupThousands(int64(math.Round(ms))) + " ms"
}

// FormatBytes renders a byte count as B, KB or MB. Non-positive counts
// render as "—".
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "—"
	}
	units := []string{"B", "KB", "MB"}
	num := float64(bytes)
	i := 0
	for num >= 1024 && i < len(units)-1 {
		num /= 1024
		i++
	}
	decimals := 1
	if num >= 10 || num < 1 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f %s", decimals, num, units[i])
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
