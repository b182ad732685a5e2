package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	_ "orderflow/docs"
	"orderflow/internal/adapter/http/handlers"
	"orderflow/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Order   *handlers.OrderHandler
	Line    *handlers.LineHandler
	Billing *handlers.BillingHandler
	Payment *handlers.BillPaymentHandler
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	addPingRoutes(router)

	v1 := router.Group("/v1")
	addOrderRoutes(v1, h.Order)
	addLineRoutes(v1, h.Line)
	addBillingRoutes(v1, h.Billing, h.Payment)
	return router
}

// Run serves the router until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, router *gin.Engine, port int) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "[http][server] listening port=%d", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infof(context.Background(), "[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf(c.Request.Context(), "[http][recovery] panic path=%s recovered=%v", c.FullPath(), recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(handlers.ActorMiddleware())
}
