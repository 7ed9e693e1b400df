package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/filestorage"
	"helpdesk-system/pkg/middleware"
)

func runRequestRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	requestRepo := repositories.NewRequestRepository(dbConn)
	responseRepo := repositories.NewResponseRepository(dbConn)
	commentRepo := repositories.NewCommentRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	historyRepo := repositories.NewRequestHistoryRepository(dbConn)
	fileRepo := repositories.NewFileRepository(dbConn)

	attachmentService := services.NewAttachmentService(fileRepo, fileStorage, logger)
	historyService := services.NewRequestHistoryService(historyRepo, logger)
	requestService := services.NewRequestService(
		requestRepo,
		responseRepo,
		commentRepo,
		reportRepo,
		historyService,
		attachmentService,
		logger,
	)

	requestCtrl := controllers.NewRequestController(requestService, logger)

	group := api.Group("/requests", authMW.Auth)
	{
		group.GET("", requestCtrl.GetRequests)
		group.GET("/:id", requestCtrl.FindRequest)
		group.POST("", requestCtrl.CreateRequest)
		group.PUT("/:id", requestCtrl.UpdateRequest)
		group.DELETE("/:id", requestCtrl.DeleteRequest)
		group.PATCH("/:id/status", requestCtrl.ChangeStatus)
		group.POST("/:id/take", requestCtrl.TakeRequest)
	}
}
