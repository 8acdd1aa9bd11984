// Package http wires the gin engine, handlers, and middleware.
package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"dutywire/internal/application/overtime/usecases"
	"dutywire/internal/domain/overtime"
	"dutywire/internal/domain/shared/events"
	"dutywire/internal/infrastructure/auth"
	"dutywire/internal/infrastructure/config"
	"dutywire/internal/infrastructure/lock"
	"dutywire/internal/infrastructure/repository"
	overtimehandlers "dutywire/internal/interfaces/http/handlers/overtime"
	"dutywire/internal/interfaces/http/middleware"
	"dutywire/internal/interfaces/http/routes"
	sharedconfig "dutywire/internal/shared/config"
	"dutywire/internal/shared/db"
	"dutywire/internal/shared/logger"
)

// Router holds the configured gin engine and its route dependencies.
type Router struct {
	engine         *gin.Engine
	postingHandler *overtimehandlers.PostingHandler
	signupHandler  *overtimehandlers.SignupHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter builds the full HTTP surface. A nil redisClient selects the
// in-process posting lock; with redis the lock serializes across instances.
func NewRouter(
	database *gorm.DB,
	redisClient *redis.Client,
	dispatcher events.EventPublisher,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	engine := gin.New()

	postingRepo := repository.NewOvertimePostingRepository(database, log)
	signupRepo := repository.NewOvertimeSignupRepository(database, log)
	auditRepo := repository.NewOvertimeAuditRepository(database, log)

	transactor := db.NewTransactionManager(database)

	var locker usecases.PostingLocker
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, log)
	} else {
		locker = lock.NewKeyedMutex()
	}

	lockWait := cfg.Overtime.LockWait()
	ranks := rankTableFromConfig(&cfg.Overtime)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	createUC := usecases.NewCreatePostingUseCase(postingRepo, auditRepo, transactor, dispatcher, log)
	updateUC := usecases.NewUpdatePostingUseCase(postingRepo, signupRepo, auditRepo, transactor, locker, lockWait, log)
	closeUC := usecases.NewClosePostingUseCase(postingRepo, auditRepo, transactor, locker, lockWait, dispatcher, log)
	deleteUC := usecases.NewDeletePostingUseCase(postingRepo, signupRepo, auditRepo, transactor, locker, lockWait, log)
	getUC := usecases.NewGetPostingUseCase(postingRepo, signupRepo, log)
	listUC := usecases.NewListPostingsUseCase(postingRepo, signupRepo, log)
	auditUC := usecases.NewGetAuditTrailUseCase(postingRepo, auditRepo, log)
	claimUC := usecases.NewClaimSlotUseCase(postingRepo, signupRepo, auditRepo, transactor, locker, lockWait, ranks, dispatcher, log)
	withdrawUC := usecases.NewWithdrawSlotUseCase(postingRepo, signupRepo, auditRepo, transactor, locker, lockWait, dispatcher, log)
	forceUC := usecases.NewForceAssignUseCase(postingRepo, signupRepo, auditRepo, transactor, locker, lockWait, ranks, dispatcher, log)

	return &Router{
		engine:         engine,
		postingHandler: overtimehandlers.NewPostingHandler(createUC, updateUC, closeUC, deleteUC, getUC, listUC, auditUC),
		signupHandler:  overtimehandlers.NewSignupHandler(claimUC, withdrawUC, forceUC),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config, log logger.Interface) {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.RequestLogger(log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupOvertimeRoutes(r.engine, &routes.OvertimeRouteConfig{
		PostingHandler: r.postingHandler,
		SignupHandler:  r.signupHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// rankTableFromConfig merges configured rank priorities over the built-in
// table. Keys are lowercased to match the table's substring semantics.
func rankTableFromConfig(cfg *sharedconfig.OvertimeConfig) overtime.RankTable {
	table := overtime.DefaultRankTable()
	for fragment, priority := range cfg.RankPriorities {
		table[strings.ToLower(fragment)] = priority
	}
	return table
}
