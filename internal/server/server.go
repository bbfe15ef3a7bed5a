// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/types"
)

// Analyzer is the pipeline behind the /analyze endpoint.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalyzeRequest) types.AnalysisResult
}

// New builds the router: a health check plus the single analysis endpoint.
// CORS stays wide open so a local frontend on any port can call it.
func New(analyzer Analyzer, logger *zap.Logger) *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	g.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fact-checking pipeline is running.",
		})
	})

	g.POST("/analyze", func(c *gin.Context) {
		var req types.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Info("rejecting malformed analyze request", zap.Error(err))
			c.JSON(http.StatusBadRequest, types.AnalysisResult{
				Claims: []types.Claim{},
				Error:  "Invalid request body: expected JSON with 'text' and/or 'url' fields.",
			})
			return
		}

		result := analyzer.Analyze(c.Request.Context(), req)
		c.JSON(http.StatusOK, result)
	})

	return g
}
