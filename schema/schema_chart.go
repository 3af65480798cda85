package schema

import "time"

// ChartStyle is the single visual definition shared by every chart document.
type ChartStyle struct {
	Title       string   `json:"title"`
	XLabel      string   `json:"x_label"`
	YLabel      string   `json:"y_label"`
	Palette     []string `json:"palette"`
	FontFamily  string   `json:"font_family"`
	FontSize    int      `json:"font_size"`
	LineWidth   float64  `json:"line_width"`
	BandOpacity float64  `json:"band_opacity"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
}

// ChartPoint is one plotted sample; Value is nil where the line breaks.
type ChartPoint struct {
	Date   time.Time         `json:"date"`
	Value  *float64          `json:"value"`
	Status ObservationStatus `json:"status"`
}

// ChartOverlay is a shaded band or a marker drawn over the series.
type ChartOverlay struct {
	Label      string         `json:"label"`
	Kind       AnnotationKind `json:"kind"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	LabelDate  time.Time      `json:"label_date"`
	LabelValue *float64       `json:"label_value,omitempty"`
	Color      string         `json:"color"`
	Opacity    float64        `json:"opacity"`
}

// ChartDocument is a renderer-agnostic description of one plot.
type ChartDocument struct {
	Title    string         `json:"title"`
	XLabel   string         `json:"x_label"`
	YLabel   string         `json:"y_label"`
	Series   string         `json:"series"`
	YRange   []float64      `json:"y_range,omitempty"` // [min, max] with padding, empty when no value is known
	Points   []ChartPoint   `json:"points"`
	Overlays []ChartOverlay `json:"overlays"`
	Hidden   []string       `json:"hidden,omitempty"` // labels of out-of-range annotations
	Style    ChartStyle     `json:"style"`
}
