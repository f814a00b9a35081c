package api

import (
	"context"
	"net/http"
	"strings"

	"credcheck/config"
	"credcheck/types"

	"github.com/gin-gonic/gin"
)

// CheckService describes the credibility checker the controller needs.
type CheckService interface {
	Check(ctx context.Context, url string, topN int) (*types.CredibilityResult, error)
}

// CheckRequest represents the request to score an article URL.
type CheckRequest struct {
	URL  string `json:"url"`
	TopN *int   `json:"top_n"`
}

// RegisterCheckRoutes registers the credibility check endpoint.
func RegisterCheckRoutes(r *gin.Engine, service CheckService) {
	r.POST("/api/check", handleCheck(service))
}

// handleCheck scores the article at the submitted URL. top_n defaults to 3
// and values below 1 are clamped to 1. Internal failures come back as a
// single-field message, never a stack trace.
func handleCheck(service CheckService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "URL is required."})
			return
		}

		if strings.TrimSpace(req.URL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "URL is required."})
			return
		}

		topN := config.DefaultTopN
		if req.TopN != nil {
			topN = *req.TopN
			if topN < 1 {
				topN = 1
			}
		}

		result, err := service.Check(c.Request.Context(), req.URL, topN)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
