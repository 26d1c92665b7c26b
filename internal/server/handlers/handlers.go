// Package handlers provides HTTP request handlers for the map server.
package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	_ "embed"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/cmd/output"
	"github.com/agentstation/inetmap/internal/server/response"
	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/logging"
	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
	"github.com/agentstation/inetmap/pkg/render"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// Handlers holds the dependencies of the route handlers.
type Handlers struct {
	app       application.Application
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(app application.Application, logger *zerolog.Logger, startTime time.Time) *Handlers {
	return &Handlers{
		app:       app,
		logger:    logger,
		startTime: startTime,
	}
}

// prepare runs the preparer for r, honoring an optional threshold query
// parameter.
func (h *Handlers) prepare(r *http.Request) (*reconciler.Result, error) {
	req, err := h.request(r)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithOperation(r.Context(), "prepare")
	return h.app.Preparer().Prepare(ctx, req)
}

func (h *Handlers) request(r *http.Request) (prepare.Request, error) {
	req := h.app.Request()
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.NewValidationError("threshold", raw, "must be an integer year")
		}
		if year <= 0 {
			return req, errors.NewValidationError("threshold", raw, "must be a positive year")
		}
		req.Threshold = year
	}
	return req, nil
}

// choropleth builds the map for result with the configured size.
func (h *Handlers) choropleth(result *reconciler.Result) *render.Choropleth {
	width, height := h.app.MapSize()
	return render.NewChoropleth(result, render.WithSize(width, height))
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error().Err(err).Msg("Request failed")
	response.ErrorFromType(w, err)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "inetmap",
		"version": h.app.Version(),
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HandleCoverage handles GET /api/v1/coverage.
func (h *Handlers) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	result, err := h.prepare(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, output.NewCoverageReport(result))
}

// HandleRecords handles GET /api/v1/records: the joined rows of the
// selected year.
func (h *Handlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.prepare(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{
		"year":    result.Year,
		"tier":    result.Tier,
		"records": result.Records,
	})
}

// HandleSVG handles GET /map.svg.
func (h *Handlers) HandleSVG(w http.ResponseWriter, r *http.Request) {
	result, err := h.prepare(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(w, h.choropleth(result)); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to write SVG")
	}
}

// HandlePNG handles GET /map.png.
func (h *Handlers) HandlePNG(w http.ResponseWriter, r *http.Request) {
	result, err := h.prepare(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.WritePNG(w, h.choropleth(result)); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to write PNG")
	}
}

// pageData feeds the page template.
type pageData struct {
	Title       string
	Description string
	Caption     string
	MapURL      string
	Result      *reconciler.Result
	Summary     string
	Coverage    output.CoverageReport
}

// HandlePage handles GET /: title, description, map and caption.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	result, err := h.prepare(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	mapURL := "/map.svg"
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		mapURL += "?threshold=" + strconv.Itoa(result.Threshold)
	}

	c := h.choropleth(result)
	data := pageData{
		Title:       c.Title,
		Description: constants.MapDescription,
		Caption:     c.Caption,
		MapURL:      mapURL,
		Result:      result,
		Summary:     result.Summary(),
		Coverage:    output.NewCoverageReport(result),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to render page")
	}
}
