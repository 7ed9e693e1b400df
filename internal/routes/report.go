package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/middleware"
)

func runReportRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportRepo := repositories.NewReportRepository(dbConn)
	reportService := services.NewReportService(reportRepo, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	group := api.Group("/reports", authMW.Auth)
	{
		group.GET("", reportCtrl.GetReports)
		group.GET("/export", reportCtrl.ExportReports)
		group.GET("/:id", reportCtrl.FindReport)
		group.GET("/request/:id", reportCtrl.FindReportByRequest)
		group.POST("", reportCtrl.CreateReport)
	}
}
