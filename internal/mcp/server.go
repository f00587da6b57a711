// Package mcp exposes the radial chart pipeline as Model Context Protocol
// tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matzehuels/radialstack/pkg/buildinfo"
	"github.com/matzehuels/radialstack/pkg/pipeline"
)

// NewMCPServer configures the tool server without starting it.
func NewMCPServer(runner *pipeline.Runner) *server.MCPServer {
	s := server.NewMCPServer(
		"radialstack",
		buildinfo.Version,
		server.WithLogging(),
	)

	h := &toolHandler{runner: runner}

	s.AddTool(mcp.NewTool("render_radial_chart",
		mcp.WithDescription("Render a table as a radial stacked chart. The table is JSON in the shape {\"columns\": [{\"name\": ..., \"roles\": [\"segments\"|\"layers\"|\"data_values\"]}], \"rows\": [[...]]}; columns without roles are bound by position (segment, layer, value)."),
		mcp.WithString("table", mcp.Description("The table as JSON."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Output format: svg (text), json (scene text) or png (image). Defaults to 'svg'. PDF is only available from the CLI and HTTP host."), mcp.Enum(pipeline.FormatSVG, pipeline.FormatJSON, pipeline.FormatPNG)),
		mcp.WithNumber("width", mcp.Description("Viewport width. Defaults to 800.")),
		mcp.WithNumber("height", mcp.Description("Viewport height. Defaults to 600.")),
		mcp.WithBoolean("static", mcp.Description("Draw the final frame without animations.")),
		mcp.WithString("palette", mcp.Description("Palette file contents in TOML ([colors] table, scheme list, unknown color).")),
		mcp.WithString("segment", mcp.Description("Column holding segments.")),
		mcp.WithString("layer", mcp.Description("Column holding layers.")),
		mcp.WithString("value", mcp.Description("Column holding values.")),
		mcp.WithString("font_family", mcp.Description("Font family. Defaults to helvetica.")),
		mcp.WithNumber("layer_font_size", mcp.Description("Layer label font size. Defaults to 14.")),
		mcp.WithNumber("legend_font_size", mcp.Description("Legend and segment label font size. Defaults to 12.")),
	), h.handleRender)

	s.AddTool(mcp.NewTool("transform_table",
		mcp.WithDescription("Aggregate a table into one record per segment, listing each layer's value and the segment total."),
		mcp.WithString("table", mcp.Description("The table as JSON."), mcp.Required()),
		mcp.WithString("segment", mcp.Description("Column holding segments.")),
		mcp.WithString("layer", mcp.Description("Column holding layers.")),
		mcp.WithString("value", mcp.Description("Column holding values.")),
	), h.handleTransform)

	s.AddTool(mcp.NewTool("list_style_options",
		mcp.WithDescription("List the chart's editable style options and their defaults."),
	), h.handleListStyleOptions)

	return s
}

// StartMCPServer serves the tools on stdin/stdout until the client
// disconnects.
func StartMCPServer(_ context.Context, runner *pipeline.Runner) error {
	return server.ServeStdio(NewMCPServer(runner))
}
