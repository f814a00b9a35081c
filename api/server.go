package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexHTML []byte

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(service CheckService, store EvidenceStore) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterCheckRoutes(r, service)
	RegisterEvidenceRoutes(r, store)
	RegisterHealthRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
	return r
}
