package core

import (
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// day builds a UTC calendar date.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seriesAt builds a series from day offsets and values; nil values are missing.
func seriesAt(base time.Time, offsets []int, values []*float64) schema.Series {
	obs := make([]schema.Observation, len(offsets))
	for i, off := range offsets {
		obs[i] = schema.Observation{Date: base.AddDate(0, 0, off), Value: values[i]}
	}
	return schema.Series{Name: "cpi", Observations: obs}
}

func vals(vs ...any) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		switch x := v.(type) {
		case nil:
			out[i] = nil
		case int:
			out[i] = schema.Float(float64(x))
		case float64:
			out[i] = schema.Float(x)
		}
	}
	return out
}

func valuesOf(s schema.Series) []*float64 {
	out := make([]*float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Value
	}
	return out
}
