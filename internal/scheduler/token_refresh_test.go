package scheduler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/journey-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/distlock"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)

type refreshDeps struct {
	accounts *repomocks.MockAccountRepository
	meta     *metamocks.MockMetaIntegrator
	redis    *redis.Client
	metrics  *metrics.Metrics
	service  *TokenRefreshService
}

func newRefreshService(t *testing.T) refreshDeps {
	ctrl := gomock.NewController(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	deps := refreshDeps{
		accounts: repomocks.NewMockAccountRepository(ctrl),
		meta:     metamocks.NewMockMetaIntegrator(ctrl),
		redis:    client,
		metrics:  metrics.New(),
	}

	cfg := &config.Config{TokenRefresh: config.TokenRefresh{CronSchedule: "0 3 * * *", WindowDays: 7, Enabled: true}}
	lock := distlock.NewRedisLock(client, TokenRefreshLockKey, time.Minute)
	deps.service = NewTokenRefreshService(deps.accounts, deps.meta, lock, cfg, deps.metrics)
	deps.service.now = func() time.Time { return fixedNow }

	return deps
}

func TestTokenRefreshService_RefreshExpiring(t *testing.T) {
	ctx := context.Background()
	deps := newRefreshService(t)
	newExpiry := fixedNow.AddDate(0, 0, 59)

	accounts := []*domain.Account{
		{ID: "acc-1", UserID: 1, AccessToken: "old-1"},
		{ID: "acc-2", UserID: 2, AccessToken: "old-2"},
		{ID: "acc-3", UserID: 3, AccessToken: "old-3"},
		{ID: "acc-4", UserID: 4, AccessToken: "old-4"},
	}

	deps.accounts.EXPECT().
		ListExpiringBetween(gomock.Any(), domain.ProviderFacebook, fixedNow, fixedNow.AddDate(0, 0, 7)).
		Return(accounts, nil)

	deps.meta.EXPECT().RefreshToken(gomock.Any(), "old-1").Return("new-1", &newExpiry, nil)
	deps.accounts.EXPECT().UpdateToken(gomock.Any(), "acc-1", "new-1", &newExpiry).Return(nil)

	deps.meta.EXPECT().RefreshToken(gomock.Any(), "old-2").
		Return("", nil, &metadomain.UpstreamError{StatusCode: http.StatusBadRequest, Type: "OAuthException", Code: 190})

	deps.meta.EXPECT().RefreshToken(gomock.Any(), "old-3").Return("", nil, errors.New("connection reset"))

	deps.meta.EXPECT().RefreshToken(gomock.Any(), "old-4").Return("new-4", &newExpiry, nil)
	deps.accounts.EXPECT().UpdateToken(gomock.Any(), "acc-4", "new-4", &newExpiry).Return(errors.New("account not found"))

	result, err := deps.service.RefreshExpiring(ctx)

	require.NoError(t, err)
	assert.Equal(t, RefreshResult{Refreshed: 1, Failed: 2, Expired: 1}, result)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.TokenRefreshes.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(deps.metrics.TokenRefreshes.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.TokenRefreshes.WithLabelValues("expired")))

	status := deps.service.GetStatus()
	assert.Equal(t, result, status["last_result"])
	assert.Equal(t, false, status["running"])

	exists, err := deps.redis.Exists(ctx, "lock:"+TokenRefreshLockKey).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "o lock deve ser liberado ao final")
}

func TestTokenRefreshService_SkipsWhenLockIsHeld(t *testing.T) {
	ctx := context.Background()
	deps := newRefreshService(t)

	other := distlock.NewRedisLock(deps.redis, TokenRefreshLockKey, time.Minute)
	acquired, err := other.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = deps.service.RefreshExpiring(ctx)

	assert.ErrorIs(t, err, ErrLockNotAcquired)
}

func TestTokenRefreshService_RejectsConcurrentRun(t *testing.T) {
	deps := newRefreshService(t)
	deps.service.syncRunning = true

	_, err := deps.service.RefreshExpiring(context.Background())
	assert.ErrorIs(t, err, ErrRefreshRunning)

	assert.False(t, deps.service.TriggerManualSync())
}

func TestTokenRefreshService_ListFailure(t *testing.T) {
	deps := newRefreshService(t)
	deps.accounts.EXPECT().ListExpiringBetween(gomock.Any(), domain.ProviderFacebook, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := deps.service.RefreshExpiring(context.Background())

	assert.Error(t, err)
	assert.False(t, deps.service.GetStatus()["running"].(bool))
}

func TestTokenRefreshService_StartDisabled(t *testing.T) {
	deps := newRefreshService(t)
	deps.service.config.Enabled = false

	require.NoError(t, deps.service.Start(context.Background()))
	assert.Zero(t, deps.service.scheduler.Len())
}

func TestTokenRefreshService_StartSchedulesJob(t *testing.T) {
	deps := newRefreshService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, deps.service.Start(ctx))
	assert.Equal(t, 1, deps.service.scheduler.Len())
}

func TestTokenRefreshService_StartInvalidCron(t *testing.T) {
	deps := newRefreshService(t)
	deps.service.config.CronSchedule = "not a cron"

	assert.Error(t, deps.service.Start(context.Background()))
}
