package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/pipeline"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/table"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	runner *pipeline.Runner
}

func (h *toolHandler) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tbl, err := readTable(request)
	if err != nil {
		return toolError("invalid table", err), nil
	}

	format := request.GetString("format", pipeline.FormatSVG)
	if format == pipeline.FormatPDF {
		return mcp.NewToolResultError("format \"pdf\" is not available over MCP; use svg, json or png"), nil
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return toolError("unsupported format", err), nil
	}

	var pf palette.File
	if src := request.GetString("palette", ""); src != "" {
		if pf, err = palette.ParseTOML([]byte(src)); err != nil {
			return toolError("invalid palette", err), nil
		}
	}

	result, err := h.runner.Execute(ctx, tbl, pf.Colors, pipeline.Options{
		Width:   request.GetFloat("width", 0),
		Height:  request.GetFloat("height", 0),
		Formats: []string{format},
		Static:  request.GetBool("static", false),
		Style:   styleArgs(request),
		Ordinal: pf.Options(),
	})
	if err != nil {
		return toolError("render failed", err), nil
	}
	if result.Skipped {
		return mcp.NewToolResultText("nothing to draw: " + result.SkipReason), nil
	}

	data := result.Artifacts[format]
	if format == pipeline.FormatPNG {
		summary := fmt.Sprintf("radial chart: %d segments, %d layers", result.Stats.SegmentCount, result.Stats.LayerCount)
		return mcp.NewToolResultImage(summary, base64.StdEncoding.EncodeToString(data), "image/png"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *toolHandler) handleTransform(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tbl, err := readTable(request)
	if err != nil {
		return toolError("invalid table", err), nil
	}
	records, err := h.runner.Transform(ctx, tbl)
	if err != nil && !errors.Is(err, errors.ErrCodeEmptyInput) {
		return toolError("transform failed", err), nil
	}
	if records == nil {
		records = []transform.SegmentRecord{}
	}

	jsonData, _ := json.MarshalIndent(struct {
		Records []transform.SegmentRecord `json:"records"`
		Layers  []string                  `json:"layers"`
	}{records, transform.LayerNames(records)}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListStyleOptions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(styles.Schema(styles.Defaults()), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func readTable(request mcp.CallToolRequest) (table.Table, error) {
	src := request.GetString("table", "")
	if strings.TrimSpace(src) == "" {
		return table.Table{}, errors.New(errors.ErrCodeInvalidInput, "table is required")
	}
	return table.ReadJSON(strings.NewReader(src), table.Bindings{
		Segment: request.GetString("segment", ""),
		Layer:   request.GetString("layer", ""),
		Value:   request.GetString("value", ""),
	})
}

func toolError(prefix string, err error) *mcp.CallToolResult {
	msg := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, code)
	}
	return mcp.NewToolResultError(prefix + ": " + msg)
}

// styleArgs reads the style arguments. Omitted ones stay zero and take the
// defaults.
func styleArgs(request mcp.CallToolRequest) styles.Options {
	return styles.Options{
		FontFamily:     request.GetString("font_family", ""),
		LayerFontSize:  request.GetFloat("layer_font_size", 0),
		LegendFontSize: request.GetFloat("legend_font_size", 0),
	}
}
