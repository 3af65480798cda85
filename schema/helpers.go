package schema

import "time"

// Float returns a pointer to v, for building observations inline.
func Float(v float64) *float64 {
	return &v
}

// Day truncates t to midnight UTC, the granularity of every series date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Observations)
}

// Bounds returns the first and last dates of the series.
// ok is false for an empty series.
func (s Series) Bounds() (first, last time.Time, ok bool) {
	if len(s.Observations) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.Observations[0].Date, s.Observations[len(s.Observations)-1].Date, true
}

// Missing returns the number of observations without a value.
func (s Series) Missing() int {
	n := 0
	for _, o := range s.Observations {
		if !o.Known() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the series, including every value pointer.
func (s Series) Clone() Series {
	obs := make([]Observation, len(s.Observations))
	for i, o := range s.Observations {
		obs[i] = Observation{Date: o.Date}
		if o.Value != nil {
			obs[i].Value = Float(*o.Value)
		}
	}
	return Series{Name: s.Name, Observations: obs}
}

// IsOrdered reports whether the dates are strictly ascending.
func (s Series) IsOrdered() bool {
	for i := 1; i < len(s.Observations); i++ {
		if !s.Observations[i].Date.After(s.Observations[i-1].Date) {
			return false
		}
	}
	return true
}

// Covers reports whether date lies within the descriptor's placed range.
func (d Descriptor) Covers(date time.Time) bool {
	if d.OutOfRange {
		return false
	}
	return !date.Before(d.Start) && !date.After(d.End)
}
