package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// ErrUnsupportedOutput is returned when a view cannot be written in the configured format.
var ErrUnsupportedOutput = errors.New("output format not supported for this command")

// PrintDescriptors outputs placed annotations to the configured destination.
func PrintDescriptors(descriptors []schema.Descriptor, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return ErrUnsupportedOutput
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDescriptorResults(w, descriptors, cfg)
	}, fmt.Sprintf("Wrote %s annotations", cfg.Output))
}

// WriteDescriptorResults writes placed annotations, dispatching based on the output format configured.
func WriteDescriptorResults(w io.Writer, descriptors []schema.Descriptor, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, descriptors)
	case schema.CSVOut:
		return writeCSVDescriptors(w, descriptors, cfg.Precision)
	case schema.ParquetOut:
		return ErrUnsupportedOutput
	default:
		return writeDescriptorsTable(w, descriptors, cfg)
	}
}

func writeCSVDescriptors(w io.Writer, descriptors []schema.Descriptor, precision int) error {
	header := []string{"label", "kind", "start", "end", "label_date", "label_value", "out_of_range"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range descriptors {
			row := []string{
				d.Label,
				string(d.Kind),
				d.Start.Format(schema.DefaultDateFormat),
				d.End.Format(schema.DefaultDateFormat),
				d.LabelDate.Format(schema.DefaultDateFormat),
				csvFloat(d.LabelValue, precision),
				strconv.FormatBool(d.OutOfRange),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeDescriptorsTable(w io.Writer, descriptors []schema.Descriptor, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Label", "Kind", "Start", "End", "Label At", "Value", "Placement"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range descriptors {
		data = append(data, []string{
			d.Label,
			string(d.Kind),
			d.Start.Format(schema.DefaultDateFormat),
			d.End.Format(schema.DefaultDateFormat),
			d.LabelDate.Format(schema.DefaultDateFormat),
			contract.FormatValue(d.LabelValue, cfg.Precision),
			placementLabel(d.OutOfRange, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
