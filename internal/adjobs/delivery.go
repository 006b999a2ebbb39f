package adjobs

import "github.com/labstack/echo/v4"

type Handler interface {
	GenerateAd() echo.HandlerFunc
	GetJob() echo.HandlerFunc
	ListJobs() echo.HandlerFunc
	DeleteJob() echo.HandlerFunc
	GetVideo() echo.HandlerFunc
}
