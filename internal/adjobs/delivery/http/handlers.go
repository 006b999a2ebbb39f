package http

import (
	"errors"
	"net/http"

	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type adJobsHandler struct {
	adJobsUC adjobs.UseCase
}

func NewAdJobsHandler(adJobsUC adjobs.UseCase) adjobs.Handler {
	return &adJobsHandler{
		adJobsUC: adJobsUC,
	}
}

func (h *adJobsHandler) GenerateAd() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.GenerateAdInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		job, err := h.adJobsUC.GenerateAd(c.Request().Context(), input)
		if err != nil {
			if errors.Is(err, adjobs.ErrNoProductData) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, job)
	}
}

func (h *adJobsHandler) GetJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid job id"})
		}
		job, err := h.adJobsUC.GetJob(c.Request().Context(), jobID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *adJobsHandler) ListJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		jobs, err := h.adJobsUC.ListJobs(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, jobs)
	}
}

func (h *adJobsHandler) DeleteJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid job id"})
		}
		if err = h.adJobsUC.DeleteJob(c.Request().Context(), jobID); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Job deleted successfully"})
	}
}

func (h *adJobsHandler) GetVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		filename := c.Param("filename")
		if filename == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Filename is required"})
		}
		videoPath, err := h.adJobsUC.ResolveVideo(c.Request().Context(), filename)
		if err != nil {
			if errors.Is(err, adjobs.ErrVideoUnavailable) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.File(videoPath)
	}
}
