package core

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// LoadOptions controls how raw rows are turned into a series.
type LoadOptions struct {
	Name       string // Series name carried into outputs
	DateFormat string // Go time layout for the date column (default: schema.DefaultDateFormat)
}

// LoadSeries parses raw rows into a series sorted ascending by date.
// Any malformed date or value aborts the load with a *schema.ParseError, and two rows
// with the same date abort it with a *schema.DuplicateDateError.
func LoadSeries(rows []schema.RawRow, opts LoadOptions) (schema.Series, error) {
	if len(rows) == 0 {
		return schema.Series{}, schema.ErrEmptySeries
	}
	layout := opts.DateFormat
	if layout == "" {
		layout = schema.DefaultDateFormat
	}

	type parsedRow struct {
		line int
		obs  schema.Observation
	}
	parsed := make([]parsedRow, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row.Date, layout)
		if err != nil {
			return schema.Series{}, &schema.ParseError{Line: row.Line, Field: "date", Text: row.Date, Err: err}
		}
		value, err := parseValue(row.Value)
		if err != nil {
			return schema.Series{}, &schema.ParseError{Line: row.Line, Field: "value", Text: row.Value, Err: err}
		}
		parsed = append(parsed, parsedRow{line: row.Line, obs: schema.Observation{Date: date, Value: value}})
	}

	// Stable so the duplicate error names rows in source order.
	slices.SortStableFunc(parsed, func(a, b parsedRow) int {
		return a.obs.Date.Compare(b.obs.Date)
	})

	obs := make([]schema.Observation, len(parsed))
	for i, p := range parsed {
		if i > 0 && p.obs.Date.Equal(parsed[i-1].obs.Date) {
			return schema.Series{}, &schema.DuplicateDateError{Date: p.obs.Date, FirstLine: parsed[i-1].line, Line: p.line}
		}
		obs[i] = p.obs
	}

	return schema.Series{Name: opts.Name, Observations: obs}, nil
}

// parseDate parses text with layout and truncates it to a calendar day.
func parseDate(text, layout string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, err
	}
	return schema.Day(t), nil
}

// thousandsPattern matches numbers whose integer part is grouped by commas, e.g. 1,204.5.
var thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

var (
	errNotFinite    = errors.New("not a finite number")
	errCommaInValue = errors.New("comma is only allowed as a thousands separator")
)

// parseValue returns nil for missing-value tokens and the parsed number otherwise.
// Infinities are rejected so every known value can take part in arithmetic.
func parseValue(text string) (*float64, error) {
	trimmed := strings.TrimSpace(text)
	if isMissingToken(trimmed) {
		return nil, nil
	}
	if strings.Contains(trimmed, ",") {
		if !thousandsPattern.MatchString(trimmed) {
			return nil, errCommaInValue
		}
		trimmed = strings.ReplaceAll(trimmed, ",", "")
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %w", err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, errNotFinite
	}
	return &v, nil
}

func isMissingToken(text string) bool {
	lower := strings.ToLower(text)
	return slices.Contains(schema.MissingTokens, lower)
}
