package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanillS/doors-web/internal/domain"
	catalogsvc "github.com/DanillS/doors-web/internal/service/catalog"
	pricingsvc "github.com/DanillS/doors-web/internal/service/pricing"
)

type catalogService interface {
	List(ctx context.Context, includeInactive bool) ([]domain.Door, error)
	Get(ctx context.Context, id int64) (*domain.Door, error)
	Create(ctx context.Context, in catalogsvc.DoorInput) (*domain.Door, error)
	Update(ctx context.Context, id int64, in catalogsvc.DoorInput) (*domain.Door, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type pricingService interface {
	Apply(ctx context.Context, in pricingsvc.Input) (*pricingsvc.Result, error)
}

type adminService interface {
	Login(username, password string) error
	SessionTTLSeconds() int
}

// Deps carries the services the router wires handlers to.
type Deps struct {
	CatalogSvc    catalogService
	PricingSvc    pricingService
	AdminSvc      adminService
	SessionSecret string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CatalogSvc == nil {
		return nil, errors.New("catalog service required")
	}
	if deps.AdminSvc == nil {
		return nil, errors.New("admin service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowCredentials = false
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	sessionStore := sessions.NewCookieStore([]byte(deps.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   deps.AdminSvc.SessionTTLSeconds(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/keep-alive", keepAliveHandler(deps.CatalogSvc, logger))

	products := router.Group("/products")
	{
		products.GET("", listDoorsHandler(deps.CatalogSvc, logger))
		products.GET("/:id", getDoorHandler(deps.CatalogSvc))
		products.POST("", createDoorHandler(deps.CatalogSvc, logger))
		products.PUT("/:id", updateDoorHandler(deps.CatalogSvc, logger))
		products.DELETE("/:id", deleteDoorHandler(deps.CatalogSvc, logger))
	}

	adminGroup := router.Group("/admin")
	{
		adminGroup.POST("/login", loginHandler(deps.AdminSvc, sessionStore, logger))
		adminGroup.POST("/logout", logoutHandler(sessionStore))
		adminGroup.GET("/session", sessionHandler(sessionStore))
		adminGroup.POST("/bulk-price-update",
			requireAdmin(sessionStore),
			bulkPriceUpdateHandler(deps.PricingSvc, logger))
	}

	return router, nil
}
