package api

import (
	"net/http"
	"strconv"

	"credcheck/vectorstore"

	"github.com/gin-gonic/gin"
)

// EvidenceStore describes the store inspection operations exposed over HTTP.
type EvidenceStore interface {
	Count() (int, error)
	List(limit, offset int) (*vectorstore.GetResults, error)
}

// RegisterEvidenceRoutes registers evidence store inspection endpoints.
// A nil store leaves the endpoints responding 503.
func RegisterEvidenceRoutes(r *gin.Engine, store EvidenceStore) {
	g := r.Group("/api/evidence")
	g.GET("/count", handleEvidenceCount(store))
	g.GET("/entries", handleEvidenceEntries(store))
}

func handleEvidenceCount(store EvidenceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "evidence store not configured"})
			return
		}

		count, err := store.Count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// handleEvidenceEntries returns stored documents with optional pagination.
// Query params: limit (int, optional), offset (int, optional)
func handleEvidenceEntries(store EvidenceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "evidence store not configured"})
			return
		}

		limit := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		offset := 0
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				offset = n
			}
		}

		res, err := store.List(limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		// Aggregate by index into a list of objects: { id, document }
		n := len(res.IDs)
		if ln := len(res.Documents); ln < n {
			n = ln
		}
		items := make([]gin.H, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, gin.H{
				"id":       res.IDs[i],
				"document": res.Documents[i],
			})
		}

		c.JSON(http.StatusOK, items)
	}
}
