package outwriter

import (
	"io"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// PrintChart writes the chart document as JSON for an external renderer, whatever the output format.
func PrintChart(doc schema.ChartDocument, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, doc)
	}, "Wrote chart document")
}
