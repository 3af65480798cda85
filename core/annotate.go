package core

import (
	"sort"
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// Annotate places each annotation against the series date axis and returns one
// descriptor per annotation, in input order.
//
// Range annotations are clamped to the series bounds. Point annotations snap to the
// nearest observation date, preferring the earlier one on a tie. An annotation lying
// wholly outside the series is kept with OutOfRange set so the renderer can decide
// whether to draw it. Neither the series nor the annotations are modified.
// The series must be strictly ascending by date, as LoadSeries returns it.
func Annotate(s schema.Series, anns []schema.Annotation) ([]schema.Descriptor, error) {
	first, last, ok := s.Bounds()
	if !ok {
		return nil, schema.ErrEmptySeries
	}
	if !s.IsOrdered() {
		return nil, schema.ErrUnorderedSeries
	}
	for _, a := range anns {
		if err := ValidateAnnotation(a); err != nil {
			return nil, err
		}
	}

	descriptors := make([]schema.Descriptor, 0, len(anns))
	for _, a := range anns {
		if a.Kind == schema.RangeKind {
			descriptors = append(descriptors, placeRange(s, a, first, last))
		} else {
			descriptors = append(descriptors, placePoint(s, a, first, last))
		}
	}
	return descriptors, nil
}

// ValidateAnnotation checks that an annotation is well formed for its kind.
func ValidateAnnotation(a schema.Annotation) error {
	if a.Label == "" {
		return &schema.AnnotationError{Reason: "label is required"}
	}
	if a.Start.IsZero() {
		return &schema.AnnotationError{Label: a.Label, Reason: "start date is required"}
	}
	switch a.Kind {
	case schema.RangeKind:
		if a.End == nil {
			return &schema.AnnotationError{Label: a.Label, Reason: "range needs an end date"}
		}
		if a.End.Before(a.Start) {
			return &schema.AnnotationError{Label: a.Label, Reason: "range ends before it starts"}
		}
	case schema.PointKind:
		if a.End != nil {
			return &schema.AnnotationError{Label: a.Label, Reason: "point cannot have an end date"}
		}
	default:
		return &schema.AnnotationError{Label: a.Label, Reason: "kind must be range or point"}
	}
	return nil
}

func placeRange(s schema.Series, a schema.Annotation, first, last time.Time) schema.Descriptor {
	start, end := schema.Day(a.Start), schema.Day(*a.End)
	d := schema.Descriptor{Label: a.Label, Kind: a.Kind, Start: start, End: end}

	if end.Before(first) || start.After(last) {
		d.LabelDate = midpoint(start, end)
		d.OutOfRange = true
		return d
	}
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	d.Start, d.End = start, end

	label := s.Observations[nearestIndex(s, midpoint(start, end))]
	d.LabelDate = label.Date
	d.LabelValue = copyValue(label.Value)
	return d
}

func placePoint(s schema.Series, a schema.Annotation, first, last time.Time) schema.Descriptor {
	date := schema.Day(a.Start)
	d := schema.Descriptor{Label: a.Label, Kind: a.Kind, Start: date, End: date, LabelDate: date}

	if date.Before(first) || date.After(last) {
		d.OutOfRange = true
		return d
	}

	snapped := s.Observations[nearestIndex(s, date)]
	d.Start, d.End, d.LabelDate = snapped.Date, snapped.Date, snapped.Date
	d.LabelValue = copyValue(snapped.Value)
	return d
}

// nearestIndex returns the index of the observation closest to t; ties go to the earlier one.
// The series must be non-empty.
func nearestIndex(s schema.Series, t time.Time) int {
	obs := s.Observations
	i := sort.Search(len(obs), func(i int) bool {
		return !obs[i].Date.Before(t)
	})
	switch {
	case i == 0:
		return 0
	case i == len(obs):
		return len(obs) - 1
	}
	if t.Sub(obs[i-1].Date) <= obs[i].Date.Sub(t) {
		return i - 1
	}
	return i
}

func midpoint(start, end time.Time) time.Time {
	return start.Add(end.Sub(start) / 2)
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return schema.Float(*v)
}
