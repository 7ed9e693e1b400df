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

// Справочники обслуживаются одним контроллером; таблица и отображаемая
// колонка задаются здесь.
func runDictionaryRouters(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	dictionaries := []struct {
		path       string
		table      string
		nameColumn string
		name       string
	}{
		{"/categories", "categories", "name", "категория"},
		{"/request-statuses", "req_statuses", "name", "статус заявки"},
		{"/response-statuses", "resp_statuses", "name", "статус ответа"},
		{"/priorities", "priorities", "level", "приоритет"},
		{"/request-types", "req_types", "name", "тип заявки"},
	}

	for _, d := range dictionaries {
		repo := repositories.NewDictionaryRepository(dbConn, d.table, d.nameColumn)
		svc := services.NewDictionaryService(repo, d.name, logger)
		ctrl := controllers.NewDictionaryController(svc, logger)

		group := api.Group(d.path, authMW.Auth)
		group.GET("", ctrl.GetAll)
		group.GET("/:id", ctrl.Find)
		group.POST("", ctrl.Create)
		group.PUT("/:id", ctrl.Update)
		group.DELETE("/:id", ctrl.Delete)
	}
}
