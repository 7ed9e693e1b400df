package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/filestorage"
	"helpdesk-system/pkg/middleware"
	"helpdesk-system/pkg/service"
)

// RunRouters собирает все маршруты приложения под префиксом /api.
func RunRouters(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	fileStorage filestorage.FileStorageInterface,
	jwtSvc service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) {
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	api := e.Group("/api")

	runAuthRouter(api, dbConn, redisClient, jwtSvc, cfg, logger, authMW)
	runRequestRouter(api, dbConn, fileStorage, logger, authMW)
	runResponseRouter(api, dbConn, fileStorage, logger, authMW)
	runCommentRouter(api, dbConn, fileStorage, logger, authMW)
	runReportRouter(api, dbConn, logger, authMW)
	runDictionaryRouters(api, dbConn, logger, authMW)
}
