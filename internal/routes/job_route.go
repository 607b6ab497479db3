package routes

import (
	"net/http"

	"lifeweeks/commons/routes"
	"lifeweeks/internal/dto"
	"lifeweeks/internal/handler"
	"lifeweeks/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitJobRoutes(
	router *gin.Engine,
	jobHandler *handler.JobHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	// GET /api/v1/jobs - List all scheduled jobs
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.JobListRequest, dto.JobListResponse]{
			Path:        "/jobs",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.ListJobsService,
			RequireAuth: false,
		},
	)

	// GET /api/v1/jobs/:job_id - Get one scheduled job
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.JobRequest, dto.JobResponse]{
			Path:        "/jobs/:job_id",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.GetJobService,
			RequireAuth: false,
		},
	)
}
