package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Citizen-facing endpoints, no authentication.
	public := router.Group("/api/v1")
	{
		public.POST("/reports", handler.createReport)
		public.GET("/track/:complaint_id", handler.trackComplaint)
		public.GET("/reports/recent", handler.recentReports)
		public.GET("/stats", handler.reportStats)
	}

	// Staff endpoints; role checks happen in the service.
	staff := router.Group("/api/v1")
	staff.Use(authMiddleware)
	{
		staff.GET("/reports", handler.listReports)
		staff.PUT("/reports/:id/assignee", handler.assignWorker)
		staff.PUT("/reports/:id/status", handler.updateReportStatus)
		staff.PUT("/reports/:id/images", handler.updateWorkImages)
		staff.GET("/workers", handler.listWorkers)
	}

	return router
}
