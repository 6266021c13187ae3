package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/gymapi/docs"
)

// Welcome greets visitors of the root path.
func (h *Handler) Welcome(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to the gym")
}

// DocsPage serves the interactive API documentation.
func (h *Handler) DocsPage(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, docs.Page())
}

// OpenAPIYAML serves the OpenAPI document verbatim.
func (h *Handler) OpenAPIYAML(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", docs.YAML())
}

// OpenAPIJSON serves the OpenAPI document as JSON.
func (h *Handler) OpenAPIJSON(c echo.Context) error {
	doc, err := docs.Document()
	if err != nil {
		return h.fail("openapi document", err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, doc)
}
