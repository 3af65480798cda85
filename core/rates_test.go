package core

import (
	"math"
	"testing"

	"github.com/huangsam/cpitrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInflationRates(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91, 182, 274, 366, 456}, vals(100, 102, 101, 103, 104, nil))

	rates := InflationRates(s, schema.QuarterLag)
	require.Len(t, rates, 6)

	assert.Nil(t, rates[0].PeriodChange)
	assert.Nil(t, rates[0].YearChange)

	require.NotNil(t, rates[1].PeriodChange)
	assert.InDelta(t, 2.0, *rates[1].PeriodChange, 1e-9)
	require.NotNil(t, rates[2].PeriodChange)
	assert.InDelta(t, -0.98, *rates[2].PeriodChange, 1e-9)

	assert.Nil(t, rates[3].YearChange)
	require.NotNil(t, rates[4].YearChange)
	assert.InDelta(t, 4.0, *rates[4].YearChange, 1e-9)

	// Missing current value.
	assert.Nil(t, rates[5].PeriodChange)
	assert.Nil(t, rates[5].YearChange)

	for i, r := range rates {
		assert.Equal(t, s.Observations[i].Date, r.Date)
	}
}

func TestInflationRates_ZeroBase(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91}, vals(0, 5))

	rates := InflationRates(s, schema.QuarterLag)
	assert.Nil(t, rates[1].PeriodChange)
}

func TestInflationRates_NoYearLag(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91}, vals(1, 2))

	rates := InflationRates(s, 0)
	assert.Nil(t, rates[1].YearChange)
	assert.NotNil(t, rates[1].PeriodChange)
}

func TestInflationRates_NonFinite(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91, 182}, vals(100, math.Inf(1), 103))

	var rates []schema.Rate
	require.NotPanics(t, func() {
		rates = InflationRates(s, schema.QuarterLag)
	})
	assert.Nil(t, rates[1].PeriodChange)
	assert.Nil(t, rates[2].PeriodChange)
}
