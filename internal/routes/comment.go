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

func runCommentRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	commentRepo := repositories.NewCommentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	fileRepo := repositories.NewFileRepository(dbConn)

	attachmentService := services.NewAttachmentService(fileRepo, fileStorage, logger)
	commentService := services.NewCommentService(commentRepo, requestRepo, attachmentService, logger)

	commentCtrl := controllers.NewCommentController(commentService, logger)

	group := api.Group("/comments", authMW.Auth)
	{
		group.POST("", commentCtrl.CreateComment)
		group.GET("/request/:id", commentCtrl.GetCommentsByRequestID)
	}
}
