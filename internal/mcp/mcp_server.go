// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/cpitrend/internal/contract"
)

// datasetOptions are the input parameters shared by every tool.
func datasetOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("csv", mcp.Description("Dataset as CSV text with a header row. Takes precedence over dataset_path.")),
		mcp.WithString("dataset_path", mcp.Description("Path to a CSV or XLSX dataset on the server.")),
		mcp.WithString("date_column", mcp.Description("Header of the date column. Defaults to 'date'.")),
		mcp.WithString("value_column", mcp.Description("Header of the CPI column. Defaults to 'cpi'.")),
		mcp.WithString("date_format", mcp.Description("Go time layout of the date column. Defaults to '2006-01-02'.")),
		mcp.WithString("series_name", mcp.Description("Name of the series in the output.")),
	}
}

// annotationOption lets callers replace the configured annotations with HCL blocks.
func annotationOption() mcp.ToolOption {
	return mcp.WithString("annotations", mcp.Description(
		"Annotations as HCL annotation blocks with start, optional end and optional kind attributes. "+
			"Dates are YYYY-MM-DD strings or quarter_start(year, q) / quarter_end(year, q). Defaults to the configured annotations."))
}

func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, datasetOptions()...)
	return mcp.NewTool(name, append(all, opts...)...)
}

// NewMCPServer initializes and configures the cpitrend MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"CPI Trend Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	s.AddTool(newTool("fill_gaps",
		"Fill interior gaps of a quarterly CPI series by time-weighted linear interpolation. Unfillable leading and trailing gaps are reported as warnings.",
	), h.handleFillGaps)

	s.AddTool(newTool("annotate_series",
		"Place named historical periods and events against the filled CPI series and return render-ready descriptors.",
		annotationOption(),
	), h.handleAnnotateSeries)

	s.AddTool(newTool("build_report",
		"Build the annotated CPI report: filled values, provenance, period and year-over-year inflation, and annotation labels.",
		annotationOption(),
	), h.handleBuildReport)

	s.AddTool(newTool("build_chart",
		"Build a styled, renderer-agnostic chart document for the CPI series and its annotations.",
		annotationOption(),
	), h.handleBuildChart)

	return s
}

// StartMCPServer starts the cpitrend MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
