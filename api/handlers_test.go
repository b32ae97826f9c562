// handlers_test.go - Tests for the HTTP handlers
package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"textmapper/config"
	"textmapper/core"
	"textmapper/mapper"
	"textmapper/pathfinding"
)

const renderDoc = `
id: api
regions:
  - {x: 1, y: 1, to: {x: 3, y: 1}, types: [forest]}
splines:
  - points: [{x: 1, y: 1}, {x: 3, y: 1}]
    types: road
attributes:
  forest: {fill: green}
`

func newTestServer(opts ...mapper.Option) *echo.Echo {
	opts = append(opts, mapper.WithRouteCache(pathfinding.NewRouteCache(100)))
	return NewServer(NewHandlers("test", config.Default(), opts...))
}

func do(e *echo.Echo, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHandleHealth(t *testing.T) {
	rec := do(newTestServer(), http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestHandleRender(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		wantType    string
	}{
		{"default svg", "/api/render", "application/yaml", "image/svg+xml"},
		{"detected yaml", "/api/render?format=svg", "", "image/svg+xml"},
		{"png", "/api/render?format=png", "application/x-yaml", "image/png"},
		{"json", "/api/render?format=json", "text/yaml", "application/json"},
		{"msgpack", "/api/render?format=msgpack", "application/yaml", "application/vnd.msgpack"},
	}

	e := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, tt.target, tt.contentType, []byte(renderDoc))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantType, rec.Header().Get(echo.HeaderContentType))
			assert.NotZero(t, rec.Body.Len())
		})
	}
}

func TestHandleRenderOutputs(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/api/render", "", []byte(renderDoc))
	assert.Contains(t, rec.Body.String(), `<g id="regions-api">`)

	rec = do(e, http.MethodPost, "/api/render?format=png", "", []byte(renderDoc))
	_, err := png.Decode(rec.Body)
	assert.NoError(t, err)

	rec = do(e, http.MethodPost, "/api/render?format=json", "", []byte(renderDoc))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "api", m["id"])
}

func TestHandleRenderMsgpackBody(t *testing.T) {
	doc := &core.Document{ID: "packed", Regions: []core.RegionDecl{{X: 2, Y: 2}}}
	body, err := msgpack.Marshal(doc)
	require.NoError(t, err)

	rec := do(newTestServer(), http.MethodPost, "/api/render?format=json", "application/msgpack", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"id": "packed"`)
}

func TestHandleRenderErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		errCode    string
	}{
		{"unknown format", "/api/render?format=gif", renderDoc, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty body", "/api/render", "  ", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"broken json", "/api/render", `{"regions": [`, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown field", "/api/render", "regoins: []\n", http.StatusBadRequest, "BAD_REQUEST"},
		{
			"invalid document", "/api/render?validate=true",
			"splines:\n  - types: road\n", http.StatusUnprocessableEntity, "INVALID_DOCUMENT",
		},
		{
			"run off the map", "/api/render?format=json",
			`{"regions":[{"x":1,"y":1,"to":{"x":300000,"y":1},"types":["a"]}]}`,
			http.StatusUnprocessableEntity, "INVALID_DOCUMENT",
		},
		{
			"waypoint off the map", "/api/render",
			`{"splines":[{"points":[{"x":1,"y":1},{"x":9223372036854775807,"y":1}],"types":"road"}]}`,
			http.StatusUnprocessableEntity, "INVALID_DOCUMENT",
		},
	}

	e := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, tt.target, "", []byte(tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
			apiErr := decodeError(t, rec)
			assert.Equal(t, tt.errCode, apiErr.Code)
		})
	}
}

func TestHandleRenderInvalidDocumentFindings(t *testing.T) {
	rec := do(newTestServer(), http.MethodPost, "/api/render?validate=true", "", []byte("splines:\n  - types: road\n"))
	apiErr := decodeError(t, rec)
	require.Len(t, apiErr.Findings, 1)
	assert.True(t, strings.HasPrefix(apiErr.Findings[0], "splines[0] points"))
}

func TestHandleRenderLenientWithoutValidate(t *testing.T) {
	// A spline without points is skipped unless the client asks for validation.
	rec := do(newTestServer(), http.MethodPost, "/api/render?format=json", "", []byte("splines:\n  - types: road\n"))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandleRenderRouting(t *testing.T) {
	doc := &core.Document{
		ID:      "strict",
		Splines: []core.SplineDecl{{Points: []core.Point{{X: 1, Y: 1}, {X: 5, Y: 1}}, Types: "road"}},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	rec := do(newTestServer(mapper.WithStepLimit(1)), http.MethodPost, "/api/render?format=json", "", body)
	require.Equal(t, http.StatusOK, rec.Code, "lenient mode draws the waypoints")
	assert.Contains(t, rec.Body.String(), "did not converge")

	rec = do(newTestServer(mapper.WithStepLimit(1), mapper.WithStrictRouting()), http.MethodPost, "/api/render", "", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, "ROUTING_FAILED", apiErr.Code)
	assert.Contains(t, apiErr.Details, "path-1")
}

func TestHandleFlower(t *testing.T) {
	e := newTestServer()

	body := []byte(`{"letter": "A", "center": "1010"}`)
	rec := do(e, http.MethodPost, "/api/flower", echo.MIMEApplicationJSON, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp flowerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Mappings, 19)
	assert.Equal(t, core.HexMapping{DisplayValue: "A1", Coordinate: "1010"}, resp.Mappings[0])
	assert.Equal(t, core.HexMapping{DisplayValue: "A2", Coordinate: "1009"}, resp.Mappings[1])

	body = []byte(`{"letter": "B", "center": "0505", "flowerStart": "south", "relabel": true}`)
	rec = do(e, http.MethodPost, "/api/flower", echo.MIMEApplicationJSON, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0506", resp.Mappings[1].Coordinate)
}

func TestHandleFlowerErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		errCode string
	}{
		{"missing letter", `{"center": "1010"}`, "VALIDATION_ERROR"},
		{"bad center", `{"letter": "A", "center": "10"}`, "VALIDATION_ERROR"},
		{"bad direction", `{"letter": "A", "center": "1010", "flowerStart": "up"}`, "VALIDATION_ERROR"},
		{"broken json", `{"letter": `, "BAD_REQUEST"},
	}

	e := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/flower", echo.MIMEApplicationJSON, []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.errCode, decodeError(t, rec).Code)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(echo.NewHTTPError(http.StatusNotFound, "nope"), c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", decodeError(t, rec).Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(assert.AnError, c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Code)
}
