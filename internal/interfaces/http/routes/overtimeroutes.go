// Package routes registers the HTTP route groups.
package routes

import (
	"github.com/gin-gonic/gin"

	overtimehandlers "dutywire/internal/interfaces/http/handlers/overtime"
	"dutywire/internal/interfaces/http/middleware"
	"dutywire/internal/shared/authorization"
)

type OvertimeRouteConfig struct {
	PostingHandler *overtimehandlers.PostingHandler
	SignupHandler  *overtimehandlers.SignupHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupOvertimeRoutes(engine *gin.Engine, config *OvertimeRouteConfig) {
	postings := engine.Group("/overtime/postings")
	postings.Use(config.AuthMiddleware.RequireAuth())
	{
		postings.POST("",
			authorization.RequireSupervisor(),
			config.PostingHandler.CreatePosting)
		postings.GET("",
			config.PostingHandler.ListPostings)

		// Action endpoints must register before the generic /:id routes.
		postings.POST("/:id/close",
			authorization.RequireSupervisor(),
			config.PostingHandler.ClosePosting)
		postings.POST("/:id/force-assign",
			authorization.RequireSupervisor(),
			config.SignupHandler.ForceAssign)
		postings.POST("/:id/signups",
			config.SignupHandler.ClaimSlot)
		postings.GET("/:id/audit",
			authorization.RequireSupervisor(),
			config.PostingHandler.GetAuditTrail)

		postings.GET("/:id",
			config.PostingHandler.GetPosting)
		postings.PATCH("/:id",
			authorization.RequireSupervisor(),
			config.PostingHandler.UpdatePosting)
		postings.DELETE("/:id",
			authorization.RequireSupervisor(),
			config.PostingHandler.DeletePosting)
	}

	signups := engine.Group("/overtime/signups")
	signups.Use(config.AuthMiddleware.RequireAuth())
	{
		signups.DELETE("/:id",
			config.SignupHandler.WithdrawSignup)
	}
}
