package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/shopifyclient"
	"github.com/vfg2006/journey-insights-api/infrastructure/repository"
	"github.com/vfg2006/journey-insights-api/internal/api"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/scheduler"
	"github.com/vfg2006/journey-insights-api/internal/usecases/account"
	"github.com/vfg2006/journey-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/journey-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/journey-insights-api/internal/usecases/journey"
	"github.com/vfg2006/journey-insights-api/pkg/distlock"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
)

const tokenRefreshLockTTL = 10 * time.Minute

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient := redisconn(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	appMetrics := metrics.New()

	userRepo := repository.NewUserRepository(pgConn)
	accountRepo := repository.NewAccountRepository(pgConn)
	adAccountRepo := repository.NewAdAccountRepository(pgConn)
	shopRepo := repository.NewShopRepository(pgConn)

	metaIntegrator := meta.New(metaclient.NewClient(cfg, appMetrics))
	shopifyIntegrator := shopify.New(cfg, shopifyclient.NewClient(cfg, appMetrics))

	authenticator := authenticating.NewService(userRepo, cfg)
	accountService := account.NewService(accountRepo, adAccountRepo, shopRepo, metaIntegrator, shopifyIntegrator)
	insightService := insighting.NewService(cfg, metaIntegrator, accountService, adAccountRepo, appMetrics)
	journeyService := journey.NewService(shopRepo, shopifyIntegrator)

	tokenRefreshService := scheduler.NewTokenRefreshService(
		accountRepo,
		metaIntegrator,
		distlock.New(redisClient, pgConn.DB, scheduler.TokenRefreshLockKey, tokenRefreshLockTTL),
		cfg,
		appMetrics,
	)

	if err := tokenRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de renovação de tokens")
	} else {
		logrus.Info("Agendador de renovação de tokens iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Insights:       insightService,
		Accounts:       accountService,
		Journey:        journeyService,
		Authenticator:  authenticator,
		TokenRefresher: tokenRefreshService,
		Database:       pgConn,
		Metrics:        appMetrics,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn retorna nil quando REDIS_URL não está configurado; o lock do agendador
// passa a usar advisory lock do PostgreSQL
func redisconn(ctx context.Context, redisConfig config.Redis) *redis.Client {
	if redisConfig.URL == "" {
		logrus.Info("REDIS_URL não configurado, usando lock do PostgreSQL")
		return nil
	}

	opts, err := redis.ParseURL(redisConfig.URL)
	if err != nil {
		logrus.WithError(err).Fatal("REDIS_URL inválido")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return client
}
