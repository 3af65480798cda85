package core

import (
	"testing"

	"github.com/huangsam/cpitrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeries(t *testing.T) {
	rows := []schema.RawRow{
		{Line: 2, Date: "2020-07-01", Value: "104.2"},
		{Line: 3, Date: "2020-01-01", Value: "101.5"},
		{Line: 4, Date: "2020-04-01", Value: "NA"},
	}

	s, err := LoadSeries(rows, LoadOptions{Name: "CPI"})
	require.NoError(t, err)

	assert.Equal(t, "CPI", s.Name)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, day(2020, 1, 1), s.Observations[0].Date)
	assert.Equal(t, day(2020, 4, 1), s.Observations[1].Date)
	assert.Equal(t, day(2020, 7, 1), s.Observations[2].Date)
	assert.InDelta(t, 101.5, *s.Observations[0].Value, 1e-12)
	assert.Nil(t, s.Observations[1].Value)
	assert.True(t, s.IsOrdered())
}

func TestLoadSeries_MissingTokens(t *testing.T) {
	tokens := []string{"", "  ", "NA", "n/a", "NaN", "null", "-"}
	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			s, err := LoadSeries([]schema.RawRow{{Line: 1, Date: "2021-01-01", Value: tok}}, LoadOptions{})
			require.NoError(t, err)
			assert.Nil(t, s.Observations[0].Value)
		})
	}
}

func TestLoadSeries_ThousandsSeparator(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"1,204.5", 1204.5},
		{"12,345,678", 12345678},
		{"-1,000", -1000},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s, err := LoadSeries([]schema.RawRow{{Line: 1, Date: "2021-01-01", Value: tt.value}}, LoadOptions{})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, *s.Observations[0].Value, 1e-9)
		})
	}
}

func TestLoadSeries_RejectsMisplacedCommas(t *testing.T) {
	for _, value := range []string{"254,5", "1,2,3", "12,34.5", ",100", "1,000,"} {
		t.Run(value, func(t *testing.T) {
			_, err := LoadSeries([]schema.RawRow{{Line: 3, Date: "2021-01-01", Value: value}}, LoadOptions{})
			var perr *schema.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "value", perr.Field)
			assert.Equal(t, 3, perr.Line)
		})
	}
}

func TestLoadSeries_RejectsNonFinite(t *testing.T) {
	for _, value := range []string{"Inf", "+Inf", "-Infinity", "infinity", "1e400"} {
		t.Run(value, func(t *testing.T) {
			rows := []schema.RawRow{
				{Line: 2, Date: "2020-01-01", Value: "100"},
				{Line: 3, Date: "2020-04-01", Value: ""},
				{Line: 4, Date: "2020-07-01", Value: value},
			}
			_, err := LoadSeries(rows, LoadOptions{})
			var perr *schema.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 4, perr.Line)
			assert.Equal(t, "value", perr.Field)
		})
	}
}

func TestLoadSeries_CustomDateFormat(t *testing.T) {
	rows := []schema.RawRow{{Line: 1, Date: "31/03/2022", Value: "1"}}

	s, err := LoadSeries(rows, LoadOptions{DateFormat: "02/01/2006"})
	require.NoError(t, err)
	assert.Equal(t, day(2022, 3, 31), s.Observations[0].Date)
}

func TestLoadSeries_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		row   schema.RawRow
		field string
	}{
		{"bad date", schema.RawRow{Line: 7, Date: "2020-13-01", Value: "1"}, "date"},
		{"text date", schema.RawRow{Line: 8, Date: "Q1 2020", Value: "1"}, "date"},
		{"bad value", schema.RawRow{Line: 9, Date: "2020-01-01", Value: "abc"}, "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeries([]schema.RawRow{tt.row}, LoadOptions{})
			var perr *schema.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.row.Line, perr.Line)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestLoadSeries_DuplicateDate(t *testing.T) {
	rows := []schema.RawRow{
		{Line: 2, Date: "2020-01-01", Value: "1"},
		{Line: 3, Date: "2020-04-01", Value: "2"},
		{Line: 4, Date: "2020-01-01", Value: "3"},
	}

	_, err := LoadSeries(rows, LoadOptions{})
	var derr *schema.DuplicateDateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.FirstLine)
	assert.Equal(t, 4, derr.Line)
	assert.Equal(t, day(2020, 1, 1), derr.Date)
}

func TestLoadSeries_Empty(t *testing.T) {
	_, err := LoadSeries(nil, LoadOptions{})
	assert.ErrorIs(t, err, schema.ErrEmptySeries)
}
