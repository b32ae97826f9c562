// handlers.go - Render, flower and health handlers
package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"textmapper/config"
	"textmapper/core"
	"textmapper/export"
	"textmapper/hexflower"
	"textmapper/importer"
	"textmapper/mapper"
	"textmapper/pathfinding"
	"textmapper/validation"
)

// maxDocumentSize caps request bodies.
const maxDocumentSize = 4 << 20

// Handlers serves the HTTP endpoints. Every request gets its own mapper
// session, so only what opts share (such as a route cache) is shared
// between requests.
type Handlers struct {
	version  string
	base     config.Options
	opts     []mapper.Option
	registry *importer.ImporterRegistry
}

// NewHandlers creates the handlers. base is the option set documents start
// from; opts configure the session of each render.
func NewHandlers(version string, base config.Options, opts ...mapper.Option) *Handlers {
	return &Handlers{
		version:  version,
		base:     base,
		opts:     append([]mapper.Option{mapper.WithOptions(base)}, opts...),
		registry: importer.NewImporterRegistry(),
	}
}

// HandleHealth returns server health status
func (h *Handlers) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"formats": export.GetAvailableFormats(),
	})
}

// HandleRender lays out the document in the request body and returns it in
// the format named by the "format" query parameter, SVG by default. The
// body may be JSON, YAML or MessagePack; the Content-Type picks the decoder
// when it names one. Positions that do not fit a four digit coordinate are
// always rejected; with validate=true, any document with errors is.
func (h *Handlers) HandleRender(c echo.Context) error {
	format := export.FormatSVG
	if f := c.QueryParam("format"); f != "" {
		parsed, err := export.ParseFormat(f)
		if err != nil {
			return NewValidationError("format")
		}
		format = parsed
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxDocumentSize+1))
	if err != nil {
		return NewBadRequestError("failed to read body", err)
	}
	if len(body) > maxDocumentSize {
		return NewBadRequestError("document too large", nil)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return NewValidationError("body")
	}

	doc, err := h.decode(body, c.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return NewBadRequestError("failed to decode document", err)
	}

	validator := validation.NewDocumentValidator()
	var findings []validation.ValidationError
	if c.QueryParam("validate") == "true" {
		findings = validator.Validate(doc)
	} else {
		findings = validator.CheckBounds(doc)
	}
	if validation.HasErrors(findings) {
		out := make([]string, len(findings))
		for i, f := range findings {
			out[i] = f.String()
		}
		return NewInvalidDocumentError(out)
	}

	m, err := mapper.Process(doc, h.opts...)
	if err != nil {
		var routeErr *pathfinding.RoutingError
		if errors.As(err, &routeErr) {
			return NewRoutingError(err)
		}
		return NewInternalError("failed to lay out document", err)
	}

	exporter, err := export.NewExporter(format)
	if err != nil {
		return NewInternalError("no exporter", err)
	}
	var buf bytes.Buffer
	if err := exporter.Export(&buf, m); err != nil {
		return NewInternalError("failed to export map", err)
	}
	mapper.Logger().Debug("rendered", "map", m.ID, "format", format, "bytes", buf.Len())
	return c.Blob(http.StatusOK, exporter.GetContentType(), buf.Bytes())
}

func (h *Handlers) decode(body []byte, contentType string) (*core.Document, error) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return h.registry.ImportWithFormat(body, "yaml")
	case strings.Contains(ct, "msgpack"):
		return h.registry.ImportWithFormat(body, "messagepack")
	case strings.Contains(ct, "json"):
		return h.registry.ImportWithFormat(body, "json")
	}
	return h.registry.Import(body)
}

type flowerRequest struct {
	Letter           string `json:"letter"`
	Center           string `json:"center"`
	Counterclockwise bool   `json:"counterclockwise"`
	FlowerStart      string `json:"flowerStart"`
	Relabel          bool   `json:"relabel"`
	Horizontal       bool   `json:"horizontal"`
	SwapEvenOdd      bool   `json:"swapEvenOdd"`
}

type flowerResponse struct {
	Letter   string            `json:"letter"`
	Center   string            `json:"center"`
	Mappings []core.HexMapping `json:"mappings"`
}

// HandleFlower computes the labels of one hex flower.
func (h *Handlers) HandleFlower(c echo.Context) error {
	var req flowerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.Letter) == "" {
		return NewValidationError("letter")
	}

	start := h.base.FlowerStart
	if req.FlowerStart != "" {
		d, err := hexflower.ParseDirection(req.FlowerStart)
		if err != nil {
			return NewValidationError("flowerStart")
		}
		start = d
	}

	o := h.base
	o.Horizontal = req.Horizontal
	o.SwapEvenOdd = req.SwapEvenOdd
	mappings := hexflower.NewCalculator(o.Orientation()).
		Calculate(req.Letter, req.Center, req.Counterclockwise, start, req.Relabel)
	if len(mappings) == 0 {
		return NewValidationError("center")
	}
	return c.JSON(http.StatusOK, flowerResponse{Letter: req.Letter, Center: req.Center, Mappings: mappings})
}
