// Package web serves the Pulse landing page and the admin placeholder.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradeflow/pulse/internal/pulse"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Handler serves the HTML pages
type Handler struct {
	identityHeader string
}

// NewHandler creates a new web handler
func NewHandler(identityHeader string) *Handler {
	return &Handler{identityHeader: identityHeader}
}

// SetupRoutes registers the page routes and template set
func (h *Handler) SetupRoutes(engine *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", h.landing)
	engine.GET("/admin", h.admin)
}

// landing renders the Pulse submission page
func (h *Handler) landing(c *gin.Context) {
	qtyMin, qtyMax := 10.0, 25.0
	example := pulse.Export(pulse.Fields{
		Commodity:     "Hard red wheat",
		QuantityMin:   &qtyMin,
		QuantityMax:   &qtyMax,
		Location:      "Odesa",
		ReadinessDate: "2026-09-15",
		FreeText:      "Looking for buyers, FOB terms preferred.",
	})

	c.HTML(http.StatusOK, "index.html.tmpl", gin.H{
		"IdentityHeader": h.identityHeader,
		"ExampleExport":  example,
	})
}

// admin renders the static admin placeholder
func (h *Handler) admin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html.tmpl", nil)
}
