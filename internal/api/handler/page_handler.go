package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the static HTML pages. The dashboard route is gated by
// the access guard in the router; everything else is public.
type PageHandler struct {
	root string
}

// NewPageHandler creates a PageHandler serving pages from the given directory.
func NewPageHandler(root string) *PageHandler {
	return &PageHandler{root: root}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.File(filepath.Join(h.root, "index.html"))
}

func (h *PageHandler) Register(c echo.Context) error {
	return c.File(filepath.Join(h.root, "regpage.html"))
}

func (h *PageHandler) Login(c echo.Context) error {
	return c.File(filepath.Join(h.root, "loginpage.html"))
}

func (h *PageHandler) User(c echo.Context) error {
	return c.File(filepath.Join(h.root, "user.html"))
}

func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.File(filepath.Join(h.root, "dashboard.html"))
}
