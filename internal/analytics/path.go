package analytics

import "strings"

// BuildLinePath maps values onto a 0-100 box as SVG path data. Larger values
// plot higher; the scale is floored at 1 so an all-zero series sits on y=100.
func BuildLinePath(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	peak := 1.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	step := 0.0
	if len(values) > 1 {
		step = 100 / float64(len(values)-1)
	}

	var sb strings.Builder
	for i, v := range values {
		x := float64(i) * step
		y := 100 - (v / peak * 100)
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(formatDecimal(x))
		sb.WriteByte(' ')
		sb.WriteString(formatDecimal(y))
	}
	return sb.String()
}
