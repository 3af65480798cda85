// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the full annotated report using the configured output format.
func (ow *OutWriter) WriteReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return PrintReport(report, cfg, duration)
}

// WriteSeries prints the filled series only, using the configured output format.
func (ow *OutWriter) WriteSeries(report schema.Report, cfg *contract.Config) error {
	return PrintSeries(report, cfg)
}

// WriteDescriptors prints placed annotations using the configured output format.
func (ow *OutWriter) WriteDescriptors(descriptors []schema.Descriptor, cfg *contract.Config) error {
	return PrintDescriptors(descriptors, cfg)
}

// WriteChart prints a chart document as JSON.
func (ow *OutWriter) WriteChart(doc schema.ChartDocument, cfg *contract.Config) error {
	return PrintChart(doc, cfg)
}

// GetMaxAnnotationWidth calculates the maximum width for the annotations column in table output
// based on terminal width and the fixed report columns.
func GetMaxAnnotationWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Date + CPI + Status + QoQ + YoY with borders/padding
	baseWidth := 12 + 10 + 14 + 10 + 10 + 16

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
