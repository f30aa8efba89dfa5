// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"spotly/internal/redemptions"
	"spotly/internal/reservations"
	"spotly/internal/shared/clock"
	"spotly/internal/shared/config"
	"spotly/internal/shared/database"
	"spotly/internal/shared/retry"
	"spotly/internal/spots"
	"spotly/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// EventPublisher receives every committed state change
type EventPublisher interface {
	spots.EventPublisher
	reservations.EventPublisher
	redemptions.EventPublisher
}

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher EventPublisher
	clock     clock.Clock

	spotService spots.Service // resolves names for reservations
}

// NewRouter creates a new router instance. publisher may be nil.
func NewRouter(cfg *config.Config, db *database.DB, publisher EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		clock:     clock.NewSystem(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.config.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Spot routes first: reservations depend on the spot service
		r.setupSpotRoutes(api)
		r.setupReservationRoutes(api)
		r.setupRedemptionRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "spotly",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "spotly",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"redis_cache": r.db.Redis != nil,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) retryPolicy() retry.Policy {
	return retry.PolicyFromConfig(r.config.Retry)
}

// setupSpotRoutes configures spot lifecycle routes
func (r *Router) setupSpotRoutes(rg *gin.RouterGroup) {
	opts := []spots.Option{spots.WithRetryPolicy(r.retryPolicy())}
	if client := r.db.GetRedisClient(); client != nil {
		opts = append(opts, spots.WithCache(cache.NewService(client)), spots.WithCacheTTL(r.config.Redis.SpotCacheTTL))
	}
	if r.publisher != nil {
		opts = append(opts, spots.WithPublisher(r.publisher))
	}

	spotRepo := spots.NewRepository(r.db.GetSQL())
	r.spotService = spots.NewService(spotRepo, spots.RulesFromConfig(r.config.Reservation), opts...)
	spotController := spots.NewController(r.spotService)

	spots.SetupSpotRoutes(rg, spotController)
}

// setupReservationRoutes configures the allocation route
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	opts := []reservations.Option{
		reservations.WithRetryPolicy(r.retryPolicy()),
		reservations.WithClock(r.clock),
		reservations.WithSkipStartedSlots(r.config.Reservation.SkipStartedSlots),
	}
	if r.publisher != nil {
		opts = append(opts, reservations.WithPublisher(r.publisher))
	}

	reservationRepo := reservations.NewRepository(r.db.GetSQL(), r.config.Reservation.MaxSelectionIterations)
	reservationService := reservations.NewService(reservationRepo, r.spotService, opts...)
	reservationController := reservations.NewController(reservationService)

	reservations.SetupReservationRoutes(rg, reservationController)
}

// setupRedemptionRoutes configures ticket lookup and presentment routes
func (r *Router) setupRedemptionRoutes(rg *gin.RouterGroup) {
	opts := []redemptions.Option{
		redemptions.WithRetryPolicy(r.retryPolicy()),
		redemptions.WithClock(r.clock),
	}
	if r.publisher != nil {
		opts = append(opts, redemptions.WithPublisher(r.publisher))
	}

	redemptionRepo := redemptions.NewRepository(r.db.GetSQL())
	redemptionService := redemptions.NewService(redemptionRepo, opts...)
	redemptionController := redemptions.NewController(redemptionService)

	redemptions.SetupRedemptionRoutes(rg, redemptionController)
}
