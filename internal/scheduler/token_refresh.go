package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/journey-insights-api/infrastructure/repository"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/distlock"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
)

// TokenRefreshLockKey identifica o job no lock distribuído
const TokenRefreshLockKey = "token_refresh"

var (
	ErrRefreshRunning  = errors.New("token refresh already running")
	ErrLockNotAcquired = errors.New("token refresh lock held by another instance")
)

// RefreshResult resume uma execução do job
type RefreshResult struct {
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
	Expired   int `json:"expired"`
}

// TokenRefreshService renova os tokens de longa duração do Facebook antes de expirarem
type TokenRefreshService struct {
	scheduler   *gocron.Scheduler
	config      config.TokenRefresh
	accountRepo repository.AccountRepository
	metaService meta.MetaIntegrator
	lock        distlock.Lock
	metrics     *metrics.Metrics
	now         func() time.Time

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          RefreshResult
}

func NewTokenRefreshService(
	accountRepo repository.AccountRepository,
	metaService meta.MetaIntegrator,
	lock distlock.Lock,
	appConfig *config.Config,
	m *metrics.Metrics,
) *TokenRefreshService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.TokenRefresh.CronSchedule,
		"window_days":   appConfig.TokenRefresh.WindowDays,
		"enabled":       appConfig.TokenRefresh.Enabled,
	}).Info("token refresh: configuration loaded")

	return &TokenRefreshService{
		scheduler:   gocron.NewScheduler(time.UTC),
		config:      appConfig.TokenRefresh,
		accountRepo: accountRepo,
		metaService: metaService,
		lock:        lock,
		metrics:     m,
		now:         time.Now,
	}
}

// Start agenda o job e para o agendador quando ctx for cancelado
func (s *TokenRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("token refresh: disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RefreshExpiring(ctx); err != nil && !errors.Is(err, ErrLockNotAcquired) {
			logrus.WithError(err).Error("token refresh: scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar renovação de tokens: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("token refresh: stopping scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshExpiring renova as credenciais que expiram dentro da janela configurada.
// Apenas uma execução por vez, tanto na instância quanto entre réplicas.
func (s *TokenRefreshService) RefreshExpiring(ctx context.Context) (RefreshResult, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return RefreshResult{}, ErrRefreshRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		logrus.Info("token refresh: lock held by another instance, skipping")
		return RefreshResult{}, ErrLockNotAcquired
	}
	defer func() {
		if err := s.lock.Release(context.Background()); err != nil {
			logrus.WithError(err).Warn("token refresh: failed to release lock")
		}
	}()

	now := s.now()
	accounts, err := s.accountRepo.ListExpiringBetween(ctx, domain.ProviderFacebook, now, now.AddDate(0, 0, s.config.WindowDays))
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list expiring accounts: %w", err)
	}

	var result RefreshResult
	for _, acc := range accounts {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		s.refreshAccount(ctx, acc, &result)
	}

	logrus.WithFields(logrus.Fields{
		"accounts":  len(accounts),
		"refreshed": result.Refreshed,
		"failed":    result.Failed,
		"expired":   result.Expired,
	}).Info("token refresh: run completed")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastResult = result
	s.syncMutex.Unlock()

	return result, nil
}

func (s *TokenRefreshService) refreshAccount(ctx context.Context, acc *domain.Account, result *RefreshResult) {
	fields := logrus.Fields{
		"account_id": acc.ID,
		"user_id":    acc.UserID,
	}

	token, expiresAt, err := s.metaService.RefreshToken(ctx, acc.AccessToken)
	if err != nil {
		var upstreamErr *metadomain.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.TokenExpired() {
			result.Expired++
			s.record("expired")
			logrus.WithFields(fields).Warn("token refresh: token already expired, user must reconnect")
			return
		}
		result.Failed++
		s.record("failed")
		logrus.WithFields(fields).WithError(err).Error("token refresh: failed to refresh token")
		return
	}

	if err := s.accountRepo.UpdateToken(ctx, acc.ID, token, expiresAt); err != nil {
		result.Failed++
		s.record("failed")
		logrus.WithFields(fields).WithError(err).Error("token refresh: failed to store token")
		return
	}

	result.Refreshed++
	s.record("success")
}

func (s *TokenRefreshService) record(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.TokenRefreshes.WithLabelValues(status).Inc()
}

// TriggerManualSync inicia uma execução fora do agendamento, sem bloquear o chamador
func (s *TokenRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("token refresh: already running, ignoring manual trigger")
		return false
	}

	go func() {
		if _, err := s.RefreshExpiring(context.Background()); err != nil {
			logrus.WithError(err).Warn("token refresh: manual run did not complete")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *TokenRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"window_days":            s.config.WindowDays,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
