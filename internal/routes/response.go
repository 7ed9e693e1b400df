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

func runResponseRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	responseRepo := repositories.NewResponseRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	historyRepo := repositories.NewRequestHistoryRepository(dbConn)
	fileRepo := repositories.NewFileRepository(dbConn)

	attachmentService := services.NewAttachmentService(fileRepo, fileStorage, logger)
	historyService := services.NewRequestHistoryService(historyRepo, logger)
	responseService := services.NewResponseService(
		responseRepo,
		requestRepo,
		historyService,
		attachmentService,
		logger,
	)

	responseCtrl := controllers.NewResponseController(responseService, logger)

	group := api.Group("/responses", authMW.Auth)
	{
		group.POST("", responseCtrl.CreateResponse)
		group.GET("/request/:id", responseCtrl.GetResponseByRequestID)
		group.PATCH("/:id/status", responseCtrl.ChangeStatus)
		group.DELETE("/:id", responseCtrl.DeleteResponse)
	}
}
