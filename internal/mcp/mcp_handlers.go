package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/cpitrend/core"
	"github.com/huangsam/cpitrend/internal/annotations"
	"github.com/huangsam/cpitrend/internal/chart"
	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/internal/source"
	"github.com/huangsam/cpitrend/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// filledSeries is the JSON payload of the fill_gaps tool.
type filledSeries struct {
	Series   schema.Series               `json:"series"`
	Filled   []string                    `json:"filled"`
	Warnings []schema.BoundaryGapWarning `json:"warnings"`
}

func (h *toolHandler) handleFillGaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.run(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gap fill failed: %v", err)), nil
	}

	payload := filledSeries{Series: result.Fill.Series, Warnings: result.Fill.Warnings, Filled: make([]string, len(result.Fill.Filled))}
	for i, d := range result.Fill.Filled {
		payload.Filled[i] = d.Format(schema.DefaultDateFormat)
	}
	return jsonResult(payload), nil
}

func (h *toolHandler) handleAnnotateSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.run(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("annotation failed: %v", err)), nil
	}
	return jsonResult(result.Descriptors), nil
}

func (h *toolHandler) handleBuildReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.run(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	return jsonResult(result.Report), nil
}

func (h *toolHandler) handleBuildChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: %v", err)), nil
	}
	result, err := h.runWith(ctx, cfg, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart failed: %v", err)), nil
	}
	return jsonResult(chart.Render(result.Report, chart.ResolveStyle(cfg.Title, cfg.Style))), nil
}

// run applies the request overrides to the base config and runs the pipeline.
func (h *toolHandler) run(ctx context.Context, request mcp.CallToolRequest) (*core.Result, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return nil, err
	}
	return h.runWith(ctx, cfg, request)
}

func (h *toolHandler) runWith(ctx context.Context, cfg *contract.Config, request mcp.CallToolRequest) (*core.Result, error) {
	opts := source.Options{
		DateColumn:  cfg.DateColumn,
		ValueColumn: cfg.ValueColumn,
		DateFormat:  cfg.DateFormat,
		Sheet:       cfg.Sheet,
	}

	var rows []schema.RawRow
	var err error
	switch {
	case request.GetString("csv", "") != "":
		rows, err = source.ReadCSV(strings.NewReader(request.GetString("csv", "")), opts)
	case cfg.DatasetPath != "":
		rows, err = source.Read(cfg.DatasetPath, opts)
	default:
		return nil, errors.New("either csv or dataset_path is required")
	}
	if err != nil {
		return nil, err
	}
	return core.Run(ctx, rows, cfg)
}

// configFor clones the base config and applies per-call overrides.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("dataset_path", ""); p != "" {
		cfg.DatasetPath = p
	}
	if c := request.GetString("date_column", ""); c != "" {
		cfg.DateColumn = c
	}
	if c := request.GetString("value_column", ""); c != "" {
		cfg.ValueColumn = c
	}
	if f := request.GetString("date_format", ""); f != "" {
		cfg.DateFormat = f
	}
	if n := request.GetString("series_name", ""); n != "" {
		cfg.SeriesName = n
	}
	if src := request.GetString("annotations", ""); src != "" {
		anns, err := annotations.ParseHCL([]byte(src), "annotations.hcl")
		if err != nil {
			return nil, err
		}
		cfg.Annotations = anns
	}
	return cfg, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}
