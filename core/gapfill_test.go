package core

import (
	"testing"

	"github.com/huangsam/cpitrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillGaps_EvenSpacing(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 30, 60, 90}, vals(10, nil, nil, 40))

	result, err := FillGaps(s)
	require.NoError(t, err)

	got := valuesOf(result.Series)
	expected := []float64{10, 20, 30, 40}
	for i, v := range expected {
		require.NotNil(t, got[i], "index %d should be filled", i)
		assert.InDelta(t, v, *got[i], 1e-9)
	}
	assert.Len(t, result.Filled, 2)
	assert.Empty(t, result.Warnings)
}

func TestFillGaps_UnequalSpacing(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 10, 40}, vals(10, nil, 40))

	result, err := FillGaps(s)
	require.NoError(t, err)

	require.NotNil(t, result.Series.Observations[1].Value)
	assert.InDelta(t, 17.5, *result.Series.Observations[1].Value, 1e-9)
	assert.Equal(t, []schema.BoundaryGapWarning(nil), result.Warnings)
}

func TestFillGaps_QuarterlyDates(t *testing.T) {
	// Quarter starts are 91, 91 and 92 days apart in 2021.
	s := schema.Series{Observations: []schema.Observation{
		{Date: day(2021, 1, 1), Value: schema.Float(100)},
		{Date: day(2021, 4, 1)},
		{Date: day(2021, 7, 1)},
		{Date: day(2021, 10, 1), Value: schema.Float(127.3)},
	}}

	result, err := FillGaps(s)
	require.NoError(t, err)

	total := day(2021, 10, 1).Sub(day(2021, 1, 1)).Hours()
	t1 := day(2021, 4, 1).Sub(day(2021, 1, 1)).Hours() / total
	t2 := day(2021, 7, 1).Sub(day(2021, 1, 1)).Hours() / total
	assert.InDelta(t, 100+t1*27.3, *result.Series.Observations[1].Value, 1e-9)
	assert.InDelta(t, 100+t2*27.3, *result.Series.Observations[2].Value, 1e-9)
}

func TestFillGaps_LeadingBoundary(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91, 182}, vals(nil, 20, 30))

	result, err := FillGaps(s)
	require.NoError(t, err)

	assert.Nil(t, result.Series.Observations[0].Value)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, day(2020, 1, 1), result.Warnings[0].Date)
	assert.Equal(t, schema.LeadingBoundary, result.Warnings[0].Position)
	assert.Empty(t, result.Filled)
}

func TestFillGaps_TrailingBoundary(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91, 182, 274}, vals(10, nil, 30, nil))

	result, err := FillGaps(s)
	require.NoError(t, err)

	assert.InDelta(t, 10+(91.0/182.0)*20, *result.Series.Observations[1].Value, 1e-9)
	assert.Nil(t, result.Series.Observations[3].Value)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, schema.TrailingBoundary, result.Warnings[0].Position)
	assert.Equal(t, day(2020, 1, 1).AddDate(0, 0, 274), result.Warnings[0].Date)
}

func TestFillGaps_AllMissing(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91}, vals(nil, nil))

	result, err := FillGaps(s)
	require.NoError(t, err)

	assert.Len(t, result.Warnings, 2)
	for _, w := range result.Warnings {
		assert.Equal(t, schema.LeadingBoundary, w.Position)
	}
	assert.Equal(t, 2, result.Series.Missing())
}

func TestFillGaps_Empty(t *testing.T) {
	_, err := FillGaps(schema.Series{})
	assert.ErrorIs(t, err, schema.ErrEmptySeries)
}

func TestFillGaps_Unordered(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{90, 0}, vals(1, 2))
	_, err := FillGaps(s)
	assert.ErrorIs(t, err, schema.ErrUnorderedSeries)

	dup := seriesAt(day(2020, 1, 1), []int{0, 0}, vals(1, 2))
	_, err = FillGaps(dup)
	assert.ErrorIs(t, err, schema.ErrUnorderedSeries)
}

func TestFillGaps_Idempotent(t *testing.T) {
	tests := []struct {
		name   string
		series schema.Series
	}{
		{"interior", seriesAt(day(2019, 1, 1), []int{0, 91, 181, 273, 365}, vals(100, nil, 103.2, nil, 108))},
		{"boundaries", seriesAt(day(2019, 1, 1), []int{0, 91, 181, 273}, vals(nil, 101, nil, nil))},
		{"complete", seriesAt(day(2019, 1, 1), []int{0, 91}, vals(1.5, 2.5))},
		{"single", seriesAt(day(2019, 1, 1), []int{0}, vals(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := FillGaps(tt.series)
			require.NoError(t, err)
			twice, err := FillGaps(once.Series)
			require.NoError(t, err)

			assert.Equal(t, once.Series, twice.Series)
			assert.Empty(t, twice.Filled)
			assert.Equal(t, once.Warnings, twice.Warnings)
		})
	}
}

func TestFillGaps_PreservesKnownValues(t *testing.T) {
	s := seriesAt(day(2010, 1, 1), []int{0, 91, 181, 273, 365, 456}, vals(99.1, nil, 100.37, nil, nil, 104.9))

	result, err := FillGaps(s)
	require.NoError(t, err)

	for i, o := range s.Observations {
		if o.Value == nil {
			continue
		}
		got := result.Series.Observations[i]
		assert.Equal(t, o.Date, got.Date)
		require.NotNil(t, got.Value)
		assert.Equal(t, *o.Value, *got.Value)
	}
}

func TestFillGaps_DoesNotMutateInput(t *testing.T) {
	s := seriesAt(day(2010, 1, 1), []int{0, 91, 181}, vals(1, nil, 3))

	_, err := FillGaps(s)
	require.NoError(t, err)

	assert.Nil(t, s.Observations[1].Value)
}
