package core

import (
	"testing"

	"github.com/huangsam/cpitrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	s := seriesAt(day(2020, 1, 1), []int{0, 91, 182, 274}, vals(nil, 100, nil, 104))
	fill, err := FillGaps(s)
	require.NoError(t, err)

	descriptors, err := Annotate(fill.Series, []schema.Annotation{
		rangeAnn("dip", day(2020, 4, 1), day(2020, 8, 1)),
		pointAnn("far", day(1999, 1, 1)),
	})
	require.NoError(t, err)

	report := BuildReport("CPI", fill, InflationRates(fill.Series, schema.QuarterLag), descriptors)

	assert.Equal(t, "CPI", report.Title)
	assert.Equal(t, "cpi", report.Series)
	require.Len(t, report.Rows, 4)
	assert.Equal(t, schema.MissingStatus, report.Rows[0].Status)
	assert.Equal(t, schema.ObservedStatus, report.Rows[1].Status)
	assert.Equal(t, schema.InterpolatedStatus, report.Rows[2].Status)
	assert.Equal(t, schema.ObservedStatus, report.Rows[3].Status)

	assert.Empty(t, report.Rows[0].Annotations)
	assert.Equal(t, []string{"dip"}, report.Rows[1].Annotations)
	assert.Equal(t, []string{"dip"}, report.Rows[2].Annotations)
	assert.Empty(t, report.Rows[3].Annotations)

	require.NotNil(t, report.Rows[2].PeriodChange)
	assert.Len(t, report.Descriptors, 2)
	assert.Len(t, report.Warnings, 1)
}
