package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Run endpoints
		v1.GET("/runs/latest", handler.GetLatestRun)

		// User endpoints
		v1.GET("/users/:address", handler.GetUser)
		v1.GET("/users", handler.ListUsers)

		// Allocation endpoints
		v1.GET("/allocations", handler.ListAllocations)
	}
}
