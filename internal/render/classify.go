package render

import (
	"sort"

	"github.com/rotisserie/eris"
)

// Scheme names a class-break strategy for choropleth classing.
type Scheme string

const (
	SchemeQuantile      Scheme = "quantile"
	SchemeEqualInterval Scheme = "equal"
)

// ParseScheme validates a scheme name.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeQuantile, SchemeEqualInterval:
		return Scheme(s), nil
	case "":
		return SchemeQuantile, nil
	default:
		return "", eris.Errorf("render: unknown classification scheme %q", s)
	}
}

// Breaks computes the classes-1 upper thresholds separating classes.
// Values need not be sorted; the input slice is not modified.
func Breaks(values []float64, classes int, scheme Scheme) ([]float64, error) {
	if classes < 2 {
		return nil, eris.Errorf("render: need at least 2 classes, got %d", classes)
	}
	if len(values) == 0 {
		return nil, eris.New("render: no values to classify")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	breaks := make([]float64, 0, classes-1)
	switch scheme {
	case SchemeQuantile:
		for i := 1; i < classes; i++ {
			pos := float64(i) * float64(len(sorted)-1) / float64(classes)
			lo := int(pos)
			frac := pos - float64(lo)
			v := sorted[lo]
			if lo+1 < len(sorted) {
				v += frac * (sorted[lo+1] - sorted[lo])
			}
			breaks = append(breaks, v)
		}
	case SchemeEqualInterval:
		lo, hi := sorted[0], sorted[len(sorted)-1]
		step := (hi - lo) / float64(classes)
		for i := 1; i < classes; i++ {
			breaks = append(breaks, lo+float64(i)*step)
		}
	default:
		return nil, eris.Errorf("render: unknown classification scheme %q", scheme)
	}
	return breaks, nil
}

// ClassIndex returns the class a value falls into given upper
// thresholds from Breaks. Values above the last threshold land in the
// top class.
func ClassIndex(v float64, breaks []float64) int {
	for i, b := range breaks {
		if v <= b {
			return i
		}
	}
	return len(breaks)
}
