package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/radialstack/pkg/buildinfo"
	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/observability"
	"github.com/matzehuels/radialstack/pkg/pipeline"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/table"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// ════════════════════════════════════════════════════════════════════
// Request / Response Types
// ════════════════════════════════════════════════════════════════════

// TransformRequest carries a host table.
type TransformRequest struct {
	Table   json.RawMessage `json:"table"`
	Columns table.Bindings  `json:"columns,omitempty"`
}

// RenderRequest carries everything one chart update needs.
type RenderRequest struct {
	TransformRequest
	Viewport layout.Viewport `json:"viewport"`
	Palette  palette.File    `json:"palette"`
	Style    styles.Options  `json:"style"`
	Static   bool            `json:"static,omitempty"`
	Scale    float64         `json:"scale,omitempty"`
}

// TransformResponse lists the records of a table.
type TransformResponse struct {
	Records []transform.SegmentRecord `json:"records"`
	Layers  []string                  `json:"layers"`
}

// APIResponse wraps JSON answers.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// ════════════════════════════════════════════════════════════════════
// Handlers
// ════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
		},
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: styles.Schema(styles.Defaults())})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if !s.decode(w, r, &req) {
		return
	}
	tbl, err := decodeTable(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	records, err := s.runner.Transform(r.Context(), tbl)
	if err != nil && !errors.Is(err, errors.ErrCodeEmptyInput) {
		s.fail(w, r, err)
		return
	}
	if records == nil {
		records = []transform.SegmentRecord{}
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    TransformResponse{Records: records, Layers: transform.LayerNames(records)},
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Palette.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	tbl, err := decodeTable(req.TransformRequest)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), tbl, req.Palette.Colors, pipeline.Options{
		Width:   req.Viewport.Width,
		Height:  req.Viewport.Height,
		Formats: []string{format},
		Static:  req.Static,
		Style:   req.Style,
		Scale:   req.Scale,
		Ordinal: req.Palette.Options(),
		Logger:  s.logger,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if result.Skipped {
		w.Header().Set(pipeline.SkippedHeader, "true")
		format = pipeline.FormatSVG
	}
	data := result.Artifacts[format]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		observability.Server().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

// decode reads a size-limited JSON body into v and answers 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func decodeTable(req TransformRequest) (table.Table, error) {
	if len(req.Table) == 0 {
		return table.Table{}, errors.New(errors.ErrCodeInvalidInput, "request has no table")
	}
	return table.ReadJSON(bytes.NewReader(req.Table), req.Columns)
}

// fail answers with the error's code. Coded errors are the caller's fault
// except INTERNAL; uncoded errors are 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.Server().OnError(r.Context(), r.Method, r.URL.Path, err)
	code := errors.GetCode(err)
	status := http.StatusBadRequest
	if code == "" || code == errors.ErrCodeInternal {
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, APIResponse{Success: false, Error: errors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
