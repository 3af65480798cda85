package schema

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDay(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"midnight", date(2020, 1, 1), date(2020, 1, 1)},
		{"afternoon", time.Date(2020, 1, 1, 15, 30, 0, 0, time.UTC), date(2020, 1, 1)},
		{"other zone keeps calendar day", time.Date(2020, 3, 31, 22, 0, 0, 0, est), date(2020, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Day(tt.in))
		})
	}
}

func TestSeriesHelpers(t *testing.T) {
	s := Series{Name: "cpi", Observations: []Observation{
		{Date: date(2020, 1, 1), Value: Float(100)},
		{Date: date(2020, 4, 1)},
		{Date: date(2020, 7, 1), Value: Float(102)},
	}}

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.Missing())
	assert.True(t, s.IsOrdered())

	first, last, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, date(2020, 1, 1), first)
	assert.Equal(t, date(2020, 7, 1), last)

	_, _, ok = Series{}.Bounds()
	assert.False(t, ok)
}

func TestSeriesClone(t *testing.T) {
	s := Series{Name: "cpi", Observations: []Observation{
		{Date: date(2020, 1, 1), Value: Float(100)},
		{Date: date(2020, 4, 1)},
	}}

	c := s.Clone()
	*c.Observations[0].Value = 999
	c.Observations[1].Value = Float(1)

	assert.InDelta(t, 100, *s.Observations[0].Value, 1e-12)
	assert.Nil(t, s.Observations[1].Value)
	assert.Equal(t, s.Name, c.Name)
}

func TestIsOrdered(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  bool
	}{
		{"empty", nil, true},
		{"single", []time.Time{date(2020, 1, 1)}, true},
		{"ascending", []time.Time{date(2020, 1, 1), date(2020, 4, 1)}, true},
		{"descending", []time.Time{date(2020, 4, 1), date(2020, 1, 1)}, false},
		{"duplicate", []time.Time{date(2020, 1, 1), date(2020, 1, 1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Series{}
			for _, d := range tt.dates {
				s.Observations = append(s.Observations, Observation{Date: d})
			}
			assert.Equal(t, tt.want, s.IsOrdered())
		})
	}
}

func TestDescriptorCovers(t *testing.T) {
	d := Descriptor{Label: "pandemic", Kind: RangeKind, Start: date(2020, 1, 1), End: date(2021, 12, 31)}

	assert.True(t, d.Covers(date(2020, 1, 1)))
	assert.True(t, d.Covers(date(2021, 12, 31)))
	assert.False(t, d.Covers(date(2019, 12, 31)))

	d.OutOfRange = true
	assert.False(t, d.Covers(date(2020, 6, 1)))
}

func TestErrorMessages(t *testing.T) {
	_, numErr := strconv.ParseFloat("abc", 64)
	parseErr := &ParseError{Line: 3, Field: "value", Text: "abc", Err: numErr}
	assert.Equal(t, `line 3: cannot parse value "abc": strconv.ParseFloat: parsing "abc": invalid syntax`, parseErr.Error())
	assert.True(t, errors.Is(parseErr, strconv.ErrSyntax))

	dupErr := &DuplicateDateError{Date: date(2020, 1, 1), FirstLine: 2, Line: 5}
	assert.Equal(t, "line 5: duplicate date 2020-01-01 (first seen on line 2)", dupErr.Error())

	assert.Equal(t, `invalid annotation "x": end before start`, (&AnnotationError{Label: "x", Reason: "end before start"}).Error())
	assert.Equal(t, "invalid annotation: missing label", (&AnnotationError{Reason: "missing label"}).Error())
}

func TestValidSets(t *testing.T) {
	assert.Len(t, ValidOutputModes, 4)
	assert.Contains(t, ValidDatabaseBackends, NoneBackend)
	assert.Contains(t, ValidAnnotationKinds, PointKind)
	assert.Contains(t, ValidAnnotationKinds, RangeKind)
}
