package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/middleware"
	"helpdesk-system/pkg/service"
)

func runAuthRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	userRepo := repositories.NewUserRepository(dbConn)
	authCacheRepo := repositories.NewAuthCacheRepository(redisClient)

	authService := services.NewAuthService(userRepo, authCacheRepo, jwtSvc, cfg.Auth, logger)
	userService := services.NewUserService(userRepo, logger)

	authCtrl := controllers.NewAuthController(authService, userService, logger)

	group := api.Group("/auth")
	{
		group.POST("/register", authCtrl.Register)
		group.POST("/login", authCtrl.Login)
		group.POST("/refresh_token", authCtrl.RefreshToken)
		group.POST("/change_password", authCtrl.ChangePassword, authMW.Auth)
		group.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
