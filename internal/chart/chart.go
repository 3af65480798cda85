// Package chart builds renderer-agnostic chart documents that all share one style.
package chart

import (
	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// yPadding is the fraction of the value span added above and below the y range.
const yPadding = 0.05

// pointOpacity is used for point markers, which are never translucent.
const pointOpacity = 1.0

// DefaultStyle returns the house style used when nothing is overridden.
func DefaultStyle() schema.ChartStyle {
	return schema.ChartStyle{
		Title:       contract.DefaultTitle,
		XLabel:      "Quarter",
		YLabel:      "Index",
		Palette:     []string{"#1f4e79", "#c0504d", "#9bbb59", "#8064a2", "#f79646"},
		FontFamily:  "sans-serif",
		FontSize:    12,
		LineWidth:   2,
		BandOpacity: 0.2,
		Width:       960,
		Height:      540,
	}
}

// ResolveStyle merges configured overrides onto DefaultStyle.
func ResolveStyle(title string, raw contract.StyleRawInput) schema.ChartStyle {
	style := DefaultStyle()
	if title != "" {
		style.Title = title
	}
	if raw.XLabel != "" {
		style.XLabel = raw.XLabel
	}
	if raw.YLabel != "" {
		style.YLabel = raw.YLabel
	}
	if len(raw.Palette) > 0 {
		style.Palette = append([]string(nil), raw.Palette...)
	}
	if raw.FontFamily != "" {
		style.FontFamily = raw.FontFamily
	}
	if raw.FontSize != nil {
		style.FontSize = *raw.FontSize
	}
	if raw.LineWidth != nil {
		style.LineWidth = *raw.LineWidth
	}
	if raw.BandOpacity != nil {
		style.BandOpacity = *raw.BandOpacity
	}
	if raw.Width != nil {
		style.Width = *raw.Width
	}
	if raw.Height != nil {
		style.Height = *raw.Height
	}
	return style
}

// BuildDocument lays out the report as an unstyled chart document.
// Out-of-range annotations are listed in Hidden instead of becoming overlays.
func BuildDocument(report schema.Report) schema.ChartDocument {
	doc := schema.ChartDocument{
		Title:  report.Title,
		Series: report.Series,
		Points: make([]schema.ChartPoint, len(report.Rows)),
	}

	lo, hi, seen := 0.0, 0.0, false
	for i, r := range report.Rows {
		doc.Points[i] = schema.ChartPoint{Date: r.Date, Value: r.Value, Status: r.Status}
		if r.Value == nil {
			continue
		}
		if !seen || *r.Value < lo {
			lo = *r.Value
		}
		if !seen || *r.Value > hi {
			hi = *r.Value
		}
		seen = true
	}
	if seen {
		pad := (hi - lo) * yPadding
		doc.YRange = []float64{lo - pad, hi + pad}
	}

	for _, d := range report.Descriptors {
		if d.OutOfRange {
			doc.Hidden = append(doc.Hidden, d.Label)
			continue
		}
		doc.Overlays = append(doc.Overlays, schema.ChartOverlay{
			Label:      d.Label,
			Kind:       d.Kind,
			Start:      d.Start,
			End:        d.End,
			LabelDate:  d.LabelDate,
			LabelValue: d.LabelValue,
		})
	}
	return doc
}

// ApplyStyle returns a copy of doc dressed in style. The first palette color
// is kept for the series line; overlays cycle through the rest.
func ApplyStyle(doc schema.ChartDocument, style schema.ChartStyle) schema.ChartDocument {
	out := doc
	out.Style = style
	out.Style.Palette = append([]string(nil), style.Palette...)
	if style.Title != "" {
		out.Title = style.Title
	}
	out.XLabel = style.XLabel
	out.YLabel = style.YLabel

	out.Overlays = make([]schema.ChartOverlay, len(doc.Overlays))
	for i, o := range doc.Overlays {
		o.Color = overlayColor(style.Palette, i)
		o.Opacity = pointOpacity
		if o.Kind == schema.RangeKind {
			o.Opacity = style.BandOpacity
		}
		out.Overlays[i] = o
	}
	return out
}

// Render builds the chart document for a report and applies style to it.
func Render(report schema.Report, style schema.ChartStyle) schema.ChartDocument {
	return ApplyStyle(BuildDocument(report), style)
}

func overlayColor(palette []string, i int) string {
	switch len(palette) {
	case 0:
		return ""
	case 1:
		return palette[0]
	}
	return palette[1+i%(len(palette)-1)]
}
