package main

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"helpdesk-system/internal/routes"
	"helpdesk-system/pkg/api"
	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/database/postgresql"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/filestorage"
	applogger "helpdesk-system/pkg/logger"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("обнаружена паника",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = api.ErrorResponse(c, apperrors.NewInternalError("Внутренняя ошибка сервера", err))
			}
			return err
		},
	}))

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	uploadsPath, err := filepath.Abs(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	e.Static("/uploads", uploadsPath)

	e.Validator = utils.NewValidator(validator.New())

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err))
	}

	fileStorage, err := filestorage.NewLocalFileStorage(uploadsPath)
	if err != nil {
		logger.Fatal("не удалось инициализировать файловое хранилище", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	routes.RunRouters(e, dbConn, redisClient, fileStorage, jwtSvc, cfg, logger)

	logger.Info("сервер запускается", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("сервер остановлен с ошибкой", zap.Error(err))
	}
}
