package annotations

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/huangsam/cpitrend/schema"
)

// hclFile is the top-level structure of an annotations file:
//
//	annotation "pandemic" {
//	  start = "2020-01-01"
//	  end   = quarter_end(2021, 4)
//	}
type hclFile struct {
	Annotations []Spec `hcl:"annotation,block"`
}

// LoadFile reads and parses an HCL annotations file.
func LoadFile(path string) ([]schema.Annotation, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations file: %w", err)
	}
	return ParseHCL(src, path)
}

// ParseHCL parses HCL annotation blocks. Dates are ISO (2006-01-02) and may be
// produced by the quarter_start and quarter_end functions.
func ParseHCL(src []byte, filename string) ([]schema.Annotation, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var doc hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL body: %s", diags.Error())
	}
	return BuildAll(doc.Annotations, schema.DefaultDateFormat)
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"quarter_start": quarterFunc(func(year, q int) time.Time {
				return time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, time.UTC)
			}),
			"quarter_end": quarterFunc(func(year, q int) time.Time {
				// Day 0 of the following month is the last day of the quarter.
				return time.Date(year, time.Month(3*q+1), 0, 0, 0, 0, 0, time.UTC)
			}),
		},
	}
}

// quarterFunc wraps a (year, quarter) date rule as an HCL function returning an ISO date.
func quarterFunc(rule func(year, q int) time.Time) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "year", Type: cty.Number},
			{Name: "quarter", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			var year, q int
			if err := gocty.FromCtyValue(args[0], &year); err != nil {
				return cty.NilVal, err
			}
			if err := gocty.FromCtyValue(args[1], &q); err != nil {
				return cty.NilVal, err
			}
			if q < 1 || q > 4 {
				return cty.NilVal, fmt.Errorf("quarter must be between 1 and 4 (received %d)", q)
			}
			return cty.StringVal(rule(year, q).Format(schema.DefaultDateFormat)), nil
		},
	})
}
