package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/gymapi/middleware"
)

// Register mounts all routes on e. With a signing key, POST routes other
// than /signin require a valid token.
func (h *Handler) Register(e *echo.Echo) {
	var guard []echo.MiddlewareFunc
	if len(h.JWTKey) > 0 {
		guard = append(guard, mw.JWT(h.JWTKey))
		e.POST("/signin", h.Signin)
	}

	// Public
	e.GET("/", h.Welcome)
	e.GET("/docs", h.DocsPage)
	e.GET("/docs/openapi.yaml", h.OpenAPIYAML)
	e.GET("/docs/openapi.json", h.OpenAPIJSON)

	e.GET("/trainers", h.Trainers)
	e.GET("/clients", h.Clients)
	e.GET("/classes", h.Classes)
	e.GET("/classes/:id/clients", h.ClassClients)

	// Writes
	e.POST("/trainers", h.CreateTrainer, guard...)
	e.POST("/clients", h.CreateClient, guard...)
	e.POST("/clients/import", h.ImportClients, guard...)
	e.POST("/classes", h.CreateClass, guard...)
	e.POST("/classes/:id", h.Enroll, guard...)
}

// NewEcho returns an echo instance with the validator and error renderer
// installed and all routes registered. Logging and TLS middleware are added by main.
func (h *Handler) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(h.log)
	h.Register(e)
	return e
}
