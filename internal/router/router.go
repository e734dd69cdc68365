package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"

	"todoapi/internal/config"
	"todoapi/internal/handler"
	"todoapi/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	m *metrics.Metrics,
	accountHandler *handler.AccountHandler,
	todoHandler *handler.TodoHandler,
	healthHandler *handler.HealthHandler,
) {
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig()))
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(corsHandler(cfg.AllowedOrigins)))
	e.Use(m.Middleware())

	e.GET("/healthz", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/register", accountHandler.Register)
	e.POST("/login", accountHandler.Login)

	e.GET("/get_list", todoHandler.ListTodos)
	e.POST("/add_list", todoHandler.AddTodo)
	e.POST("/update_list", todoHandler.ToggleTodo)
	e.POST("/del_list", todoHandler.RemoveTodo)
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler
}

func requestLoggerConfig() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogRequestID: true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}
}
