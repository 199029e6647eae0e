package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// UploadDir, when set, is served read-only under /uploads.
	UploadDir string
	// Gatherer backs /metrics. Defaults to the prometheus default registry.
	Gatherer prometheus.Gatherer
}

// NewRouter builds the echo instance with all routes registered.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(server.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if cfg.UploadDir != "" {
		e.Static("/uploads", cfg.UploadDir)
	}

	api := e.Group("/api/v1")

	orders := api.Group("/orders")
	orders.POST("", server.CreateOrder)
	orders.GET("/pending", server.GetUndeliveredOrders)
	orders.GET("/:identifier", server.GetOrder)
	orders.PATCH("/:id", server.UpdateOrder)
	orders.POST("/:id/deliver", server.MarkOrderDelivered)

	uploads := api.Group("/uploads")
	uploads.POST("/product", server.UploadProductImage)
	uploads.POST("/product/multiple", server.UploadProductImages)
	uploads.POST("/avatar", server.UploadAvatar)
	uploads.DELETE("/image/*", server.DeleteImage)
	uploads.GET("/image/*", server.GetImageDetails)

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("got incoming HTTP request",
				zap.String("uri", v.URI),
				zap.String("method", v.Method),
				zap.Duration("duration", v.Latency),
				zap.Int("status", v.Status),
			)
			return nil
		},
	})
}
