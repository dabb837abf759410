package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/internal/api/handler"
	"github.com/vfg2006/journey-insights-api/internal/api/handler/router"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/usecases/account"
	"github.com/vfg2006/journey-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/journey-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/journey-insights-api/internal/usecases/journey"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
	"github.com/vfg2006/journey-insights-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Insights       insighting.Insighter
	Accounts       account.AccountService
	Journey        journey.Journeyer
	Authenticator  authenticating.Authenticator
	TokenRefresher handler.TokenRefresher
	Database       handler.Pinger
	Metrics        *metrics.Metrics
}

// NewHandler monta o router com a cadeia de middlewares globais
func NewHandler(cfg *config.Config, services Services) http.Handler {
	routes := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Insights(services.Insights, cfg.Insights.RequestTimeout)...),
		router.WithRoutes(handler.AdAccounts(services.Accounts)...),
		router.WithRoutes(handler.Shops(services.Accounts, services.Journey)...),
		router.WithRoutes(handler.CronJobs(services.TokenRefresher)...),
	}
	if services.Metrics != nil {
		routes = append(routes, router.WithRoutes(handler.Metrics(services.Metrics.Handler())...))
	}

	rt := router.New(routes...)

	logrus.WithField("routes", rt.Routes()).Debug("Rotas registradas")

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(services.Metrics),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
