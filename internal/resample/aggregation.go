package resample

import (
	"fmt"
	"math"
	"strings"
)

// Aggregation is the reduction applied to each bucket of values.
type Aggregation string

const (
	AggMean  Aggregation = "mean"
	AggSum   Aggregation = "sum"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
	AggStd   Aggregation = "std"
	AggCount Aggregation = "count"
	AggFirst Aggregation = "first"
	AggLast  Aggregation = "last"
)

// Aggregations lists all supported aggregation methods.
func Aggregations() []Aggregation {
	return []Aggregation{AggMean, AggSum, AggMin, AggMax, AggStd, AggCount, AggFirst, AggLast}
}

// ParseAggregation parses an aggregation token, case-insensitively.
func ParseAggregation(s string) (Aggregation, error) {
	token := Aggregation(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range Aggregations() {
		if token == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation %q", s)
}

// Apply reduces a bucket of values. vals holds only present values in time
// order; an empty bucket-column yields NaN (0 for count).
func (a Aggregation) Apply(vals []float64) float64 {
	if len(vals) == 0 {
		if a == AggCount {
			return 0
		}
		return math.NaN()
	}
	switch a {
	case AggSum:
		var s float64
		for _, v := range vals {
			s += v
		}
		return s
	case AggMean:
		var s float64
		for _, v := range vals {
			s += v
		}
		return s / float64(len(vals))
	case AggMin:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case AggMax:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case AggStd:
		// Sample standard deviation (ddof=1); a single value has none.
		if len(vals) < 2 {
			return math.NaN()
		}
		var s float64
		for _, v := range vals {
			s += v
		}
		mean := s / float64(len(vals))
		var ss float64
		for _, v := range vals {
			d := v - mean
			ss += d * d
		}
		return math.Sqrt(ss / float64(len(vals)-1))
	case AggCount:
		return float64(len(vals))
	case AggFirst:
		return vals[0]
	default:
		return vals[len(vals)-1]
	}
}
