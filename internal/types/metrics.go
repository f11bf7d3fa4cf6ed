package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// MetricPoint holds one derived value for one date. Value is None during a
// metric's warm-up period; downstream consumers must skip None points rather
// than treat them as zero.
type MetricPoint struct {
	Time  time.Time
	Value optional.Option[float64]
}

// MetricSeries is a named sequence of derived values aligned by date to the
// price series it was computed from.
type MetricSeries struct {
	Name   string
	Points []MetricPoint
}

// DefinedCount returns the number of points holding a value.
func (m MetricSeries) DefinedCount() int {
	count := 0

	for _, p := range m.Points {
		if p.Value.IsSome() {
			count++
		}
	}

	return count
}

// ValueAt returns the value at index i, or ok=false if the point is inside
// the warm-up period.
func (m MetricSeries) ValueAt(i int) (float64, bool) {
	if i < 0 || i >= len(m.Points) {
		return 0, false
	}

	v, err := m.Points[i].Value.Take()
	if err != nil {
		return 0, false
	}

	return v, true
}

// Last returns the value of the final point, or ok=false if the series is
// empty or ends inside a warm-up period.
func (m MetricSeries) Last() (float64, bool) {
	return m.ValueAt(len(m.Points) - 1)
}
