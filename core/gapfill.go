package core

import (
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// FillGaps returns a copy of s where every interior run of missing values is
// replaced by linear interpolation between the known values bounding the run.
//
// Interpolation is weighted by elapsed time, not by position, so unevenly spaced
// dates get proportional estimates. Known values are copied unchanged. Runs at
// either end of the series have no bound on one side; they stay missing and each
// such observation yields a BoundaryGapWarning. The input series is not modified.
func FillGaps(s schema.Series) (schema.FillResult, error) {
	if s.Len() == 0 {
		return schema.FillResult{}, schema.ErrEmptySeries
	}
	if !s.IsOrdered() {
		return schema.FillResult{}, schema.ErrUnorderedSeries
	}

	out := s.Clone()
	obs := out.Observations
	result := schema.FillResult{Series: out}

	left := -1 // index of the last known value seen
	for k := range obs {
		if !obs[k].Known() {
			continue
		}
		switch {
		case left >= 0 && k-left > 1:
			result.Filled = append(result.Filled, interpolateRun(obs, left, k)...)
		case left < 0 && k > 0:
			result.Warnings = append(result.Warnings, boundaryWarnings(obs[:k], schema.LeadingBoundary)...)
		}
		left = k
	}

	switch {
	case left < 0:
		// Nothing known at all: the whole series is one leading gap.
		result.Warnings = append(result.Warnings, boundaryWarnings(obs, schema.LeadingBoundary)...)
	case left < len(obs)-1:
		result.Warnings = append(result.Warnings, boundaryWarnings(obs[left+1:], schema.TrailingBoundary)...)
	}

	return result, nil
}

// interpolateRun fills obs[i+1:j] from the known values at i and j and returns the filled dates.
func interpolateRun(obs []schema.Observation, i, j int) []time.Time {
	lo, hi := *obs[i].Value, *obs[j].Value
	span := float64(obs[j].Date.Sub(obs[i].Date))
	filled := make([]time.Time, 0, j-i-1)
	for k := i + 1; k < j; k++ {
		t := float64(obs[k].Date.Sub(obs[i].Date)) / span
		v := lo + t*(hi-lo)
		obs[k].Value = &v
		filled = append(filled, obs[k].Date)
	}
	return filled
}

func boundaryWarnings(obs []schema.Observation, pos schema.BoundaryPosition) []schema.BoundaryGapWarning {
	warnings := make([]schema.BoundaryGapWarning, len(obs))
	for i, o := range obs {
		warnings[i] = schema.BoundaryGapWarning{Date: o.Date, Position: pos}
	}
	return warnings
}
