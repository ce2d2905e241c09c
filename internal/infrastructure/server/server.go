package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/hifzhub/murajaah/internal/adapter/httpapi"
	"github.com/hifzhub/murajaah/internal/infrastructure/config"
	"github.com/hifzhub/murajaah/internal/usecase"
)

// Server hosts the HTTP API.
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *logrus.Logger
}

// NewServer builds the echo server and mounts all API routes.
func NewServer(
	cfg *config.Config,
	logger *logrus.Logger,
	reviews usecase.ReviewUsecase,
	plans usecase.PlanUsecase,
	ledger usecase.LedgerUsecase,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpapi.NewValidator()

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	v1 := e.Group("/api/v1")
	httpapi.RegisterReviewAPI(v1, reviews)
	httpapi.RegisterPlanAPI(v1, plans)
	httpapi.RegisterLedgerAPI(v1, ledger)

	return &Server{echo: e, cfg: cfg, logger: logger}
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	addr := s.cfg.Server.Addr()
	s.logger.WithField("addr", addr).Info("http server listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
				"user_agent": v.UserAgent,
			}
			entry := logger.WithFields(fields)
			switch {
			case v.Error != nil && v.Status >= http.StatusInternalServerError:
				entry.WithError(v.Error).Error("request completed")
			case v.Error != nil:
				entry.WithError(v.Error).Warn("request completed")
			default:
				entry.Info("request completed")
			}
			return nil
		},
	})
}

// ShutdownTimeout is the grace period for draining requests on exit.
const ShutdownTimeout = 5 * time.Second
