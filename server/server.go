// Package server hosts the HTTP surface: the chat endpoint, the CRUD
// gateway, health and metrics.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/dashwise/dashwise/assistant"
	"github.com/dashwise/dashwise/internal/profile"
	apiv1 "github.com/dashwise/dashwise/server/router/api/v1"
	"github.com/dashwise/dashwise/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

func NewServer(ctx context.Context, instanceProfile *profile.Profile, storeInstance *store.Store) (*Server, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	echoServer.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(30))))
	echoServer.Use(requestLogger())

	metrics := assistant.NewMetrics()
	apiService := apiv1.NewAPIV1Service(ctx, instanceProfile, storeInstance, metrics)
	apiService.RegisterRoutes(echoServer)

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	echoServer.GET("/metrics", echo.WrapHandler(metrics.HTTPHandler()))

	return &Server{
		Profile:    instanceProfile,
		Store:      storeInstance,
		echoServer: echoServer,
		apiService: apiService,
	}, nil
}

// Start begins serving in a background goroutine and returns immediately.
func (s *Server) Start(ctx context.Context) error {
	if s.Profile.UNIXSock != "" {
		listener, err := net.Listen("unix", s.Profile.UNIXSock)
		if err != nil {
			return errors.Wrapf(err, "failed to listen on unix socket %s", s.Profile.UNIXSock)
		}
		s.echoServer.Listener = listener
		go s.serve("")
		return nil
	}

	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go s.serve(address)
	return nil
}

func (s *Server) serve(address string) {
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("failed to start echo server", "error", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
	slog.Info("dashwise stopped properly")
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				slog.Warn("http request", attrs...)
				return nil
			}
			slog.Info("http request", attrs...)
			return nil
		},
	})
}
