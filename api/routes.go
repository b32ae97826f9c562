// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	g := e.Group("/api")
	g.GET("/health", h.HandleHealth)
	g.POST("/render", h.HandleRender)
	g.POST("/flower", h.HandleFlower)
}

// NewServer returns an Echo instance with the routes, the error handler and
// panic recovery installed.
func NewServer(h *Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.Recover())
	RegisterRoutes(e, h)
	return e
}
