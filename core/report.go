package core

import (
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// BuildReport joins the filled series, its rates and the placed annotations into report rows.
// rates must be aligned with fill.Series observations (as returned by InflationRates).
func BuildReport(title string, fill schema.FillResult, rates []schema.Rate, descriptors []schema.Descriptor) schema.Report {
	filled := make(map[time.Time]struct{}, len(fill.Filled))
	for _, d := range fill.Filled {
		filled[d] = struct{}{}
	}

	rows := make([]schema.ReportRow, len(fill.Series.Observations))
	for i, o := range fill.Series.Observations {
		row := schema.ReportRow{Date: o.Date, Value: copyValue(o.Value), Status: observationStatus(o, filled)}
		if i < len(rates) {
			row.PeriodChange = rates[i].PeriodChange
			row.YearChange = rates[i].YearChange
		}
		for _, d := range descriptors {
			if d.Covers(o.Date) {
				row.Annotations = append(row.Annotations, d.Label)
			}
		}
		rows[i] = row
	}

	return schema.Report{
		Title:       title,
		Series:      fill.Series.Name,
		Rows:        rows,
		Descriptors: descriptors,
		Warnings:    fill.Warnings,
	}
}

func observationStatus(o schema.Observation, filled map[time.Time]struct{}) schema.ObservationStatus {
	if !o.Known() {
		return schema.MissingStatus
	}
	if _, ok := filled[o.Date]; ok {
		return schema.InterpolatedStatus
	}
	return schema.ObservedStatus
}
