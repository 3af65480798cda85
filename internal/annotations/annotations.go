// Package annotations turns annotation definitions from the YAML config or an HCL file
// into schema annotations.
package annotations

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// Spec is the raw, textual form of an annotation as written by a user.
// Kind may be omitted: an annotation with an end date is a range, otherwise a point.
type Spec struct {
	Label string `mapstructure:"label" hcl:"label,label"`
	Kind  string `mapstructure:"kind" hcl:"kind,optional"`
	Start string `mapstructure:"start" hcl:"start"`
	End   string `mapstructure:"end" hcl:"end,optional"`
}

// Build converts a spec into an annotation, parsing dates with layout.
func Build(spec Spec, layout string) (schema.Annotation, error) {
	label := strings.TrimSpace(spec.Label)
	if label == "" {
		return schema.Annotation{}, &schema.AnnotationError{Reason: "label is required"}
	}
	if layout == "" {
		layout = schema.DefaultDateFormat
	}

	kind := schema.AnnotationKind(strings.ToLower(strings.TrimSpace(spec.Kind)))
	if kind == "" {
		kind = schema.PointKind
		if strings.TrimSpace(spec.End) != "" {
			kind = schema.RangeKind
		}
	}
	if _, ok := schema.ValidAnnotationKinds[kind]; !ok {
		return schema.Annotation{}, &schema.AnnotationError{Label: label, Reason: fmt.Sprintf("unknown kind %q", spec.Kind)}
	}

	start, err := time.Parse(layout, strings.TrimSpace(spec.Start))
	if err != nil {
		return schema.Annotation{}, &schema.AnnotationError{Label: label, Reason: fmt.Sprintf("bad start date %q", spec.Start)}
	}
	ann := schema.Annotation{Label: label, Kind: kind, Start: schema.Day(start)}

	if endText := strings.TrimSpace(spec.End); endText != "" {
		end, err := time.Parse(layout, endText)
		if err != nil {
			return schema.Annotation{}, &schema.AnnotationError{Label: label, Reason: fmt.Sprintf("bad end date %q", spec.End)}
		}
		end = schema.Day(end)
		ann.End = &end
	}
	return ann, nil
}

// BuildAll converts every spec, stopping at the first error.
func BuildAll(specs []Spec, layout string) ([]schema.Annotation, error) {
	anns := make([]schema.Annotation, 0, len(specs))
	for _, s := range specs {
		a, err := Build(s, layout)
		if err != nil {
			return nil, err
		}
		anns = append(anns, a)
	}
	return anns, nil
}

// Defaults returns the narrative periods used when no annotations are configured.
func Defaults() []schema.Annotation {
	pandemicEnd := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	return []schema.Annotation{
		{
			Label: "pandemic",
			Kind:  schema.RangeKind,
			Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   &pandemicEnd,
		},
		{
			Label: "conflict-onset",
			Kind:  schema.PointKind,
			Start: time.Date(2022, 2, 24, 0, 0, 0, 0, time.UTC),
		},
	}
}
