package routes

import (
	"net/http"

	"lifeweeks/commons/routes"
	"lifeweeks/internal/dto"
	"lifeweeks/internal/handler"
	"lifeweeks/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitScheduleRoutes(
	router *gin.Engine,
	scheduleHandler *handler.ScheduleHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	// POST /api/v1/users/:user_id/schedule - Create the weekly schedule
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.ScheduleRequest, dto.ScheduleResponse]{
			Path:        "/users/:user_id/schedule",
			Method:      http.MethodPost,
			ServiceFunc: scheduleHandler.SetScheduleService,
			RequireAuth: false,
		},
	)

	// PUT /api/v1/users/:user_id/schedule - Replace the weekly schedule
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.ScheduleRequest, dto.ScheduleResponse]{
			Path:        "/users/:user_id/schedule",
			Method:      http.MethodPut,
			ServiceFunc: scheduleHandler.UpdateScheduleService,
			RequireAuth: false,
		},
	)

	// DELETE /api/v1/users/:user_id/schedule - Drop the weekly schedule
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.RemoveScheduleRequest, dto.RemoveScheduleResponse]{
			Path:        "/users/:user_id/schedule",
			Method:      http.MethodDelete,
			ServiceFunc: scheduleHandler.RemoveScheduleService,
			RequireAuth: false,
		},
	)
}
