package http

import (
	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/labstack/echo/v4"
)

func MapAdJobsRoutes(adsGroup *echo.Group, h adjobs.Handler) {
	adsGroup.POST("/generate", h.GenerateAd())
	adsGroup.GET("/jobs", h.ListJobs())
	adsGroup.GET("/jobs/:job_id", h.GetJob())
	adsGroup.DELETE("/jobs/:job_id", h.DeleteJob())
	adsGroup.GET("/videos/:filename", h.GetVideo())
}
