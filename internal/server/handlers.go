package server

import (
	"net/http"

	adJobsHttp "github.com/Kdheeru12/ad-generator/internal/adjobs/delivery/http"
	adJobsRepository "github.com/Kdheeru12/ad-generator/internal/adjobs/repository"
	adJobsUsecase "github.com/Kdheeru12/ad-generator/internal/adjobs/usecase"
	"github.com/Kdheeru12/ad-generator/internal/copywriter"
	"github.com/Kdheeru12/ad-generator/internal/middleware"
	"github.com/Kdheeru12/ad-generator/internal/scraper"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/labstack/echo/v4"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	jRepo := adJobsRepository.NewAdJobsRepo(s.db)
	jRedisRepo := adJobsRepository.NewAdJobsRedisRepo(s.redisClient, s.cfg.Redis.StatusTTL)
	jAWSRepo := adJobsRepository.NewAwsRepository(s.s3Client)

	amazonScraper := scraper.NewAmazonScraper(s.cfg, s.logger)
	writer, err := copywriter.New(s.cfg, s.logger)
	if err != nil {
		return err
	}

	adJobsUC := adJobsUsecase.NewAdJobsUseCase(s.cfg, jRepo, jRedisRepo, jAWSRepo, amazonScraper, writer, s.logger)
	adJobsHandlers := adJobsHttp.NewAdJobsHandler(adJobsUC)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	adsGroup := v1.Group("/ads")

	adJobsHttp.MapAdJobsRoutes(adsGroup, adJobsHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
