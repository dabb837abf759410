package insighting

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/journey-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	meta        *metamocks.MockMetaIntegrator
	credentials *mocks.MockCredentialStore
	adAccounts  *repomocks.MockAdAccountRepository
	service     *Service
}

func newTestService(t *testing.T, policy string) testDeps {
	ctrl := gomock.NewController(t)

	deps := testDeps{
		meta:        metamocks.NewMockMetaIntegrator(ctrl),
		credentials: mocks.NewMockCredentialStore(ctrl),
		adAccounts:  repomocks.NewMockAdAccountRepository(ctrl),
	}

	cfg := &config.Config{Insights: config.Insights{RowLimit: 1000, ThumbnailPolicy: policy}}
	deps.service = NewService(cfg, deps.meta, deps.credentials, deps.adAccounts, metrics.New()).(*Service)

	return deps
}

var (
	since   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until   = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	filters = domain.InsightFilters{Since: since, Until: until}
)

func strPtr(s string) *string { return &s }

func TestResolveEntityLevel(t *testing.T) {
	tests := []struct {
		tag     string
		want    domain.EntityLevel
		wantErr bool
	}{
		{tag: "campaign", want: domain.EntityLevelCampaign},
		{tag: "utm_campaign", want: domain.EntityLevelCampaign},
		{tag: "adset", want: domain.EntityLevelAdSet},
		{tag: "ad_set", want: domain.EntityLevelAdSet},
		{tag: "utm_term", want: domain.EntityLevelAdSet},
		{tag: "ad", want: domain.EntityLevelAd},
		{tag: "UTM_CONTENT", want: domain.EntityLevelAd},
		{tag: "keyword", wantErr: true},
		{tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ResolveEntityLevel(tt.tag)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsightFields(t *testing.T) {
	assert.Equal(t,
		[]string{"campaign_id", "campaign_name", "spend", "inline_link_clicks", "ctr"},
		InsightFields(domain.EntityLevelCampaign))
	assert.Equal(t,
		[]string{"ad_id", "ad_name", "spend", "inline_link_clicks", "ctr", "adset_name"},
		InsightFields(domain.EntityLevelAd))
}

func TestFetchInsights_ValidationHappensBeforeAnyCall(t *testing.T) {
	tests := []struct {
		name        string
		level       domain.EntityLevel
		filters     domain.InsightFilters
		adAccountID string
		token       string
		wantCode    string
	}{
		{name: "nível desconhecido", level: "keyword", filters: filters, adAccountID: "act_1", token: "t", wantCode: apiErrors.ErrUnknownEntityType},
		{name: "since depois de until", level: domain.EntityLevelAd, filters: domain.InsightFilters{Since: until, Until: since}, adAccountID: "act_1", token: "t", wantCode: apiErrors.ErrInvalidDateRange},
		{name: "sem conta", level: domain.EntityLevelAd, filters: filters, token: "t", wantCode: apiErrors.ErrMissingRequiredData},
		{name: "sem token", level: domain.EntityLevelAd, filters: filters, adAccountID: "act_1", wantCode: apiErrors.ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestService(t, config.ThumbnailPolicyStrict)

			_, err := deps.service.FetchInsights(context.Background(), tt.level, tt.filters, tt.adAccountID, tt.token)

			var insightErr *InsightError
			require.True(t, errors.As(err, &insightErr))
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.wantCode, insightErr.Code)
		})
	}
}

func TestFetchInsights_CampaignLevelSkipsThumbnails(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)

	deps.meta.EXPECT().
		GetInsights(gomock.Any(), meta.InsightsQuery{
			AdAccountID: "act_1",
			AccessToken: "token",
			Level:       domain.EntityLevelCampaign,
			Fields:      []string{"campaign_id", "campaign_name", "spend", "inline_link_clicks", "ctr"},
			Filters:     filters,
			Limit:       1000,
		}).
		Return([]*domain.InsightRecord{
			{ID: "C1", Name: "Black Friday", Spend: decimal.RequireFromString("10.5")},
			{ID: "C2", Name: "Natal", Spend: decimal.RequireFromString("3")},
		}, nil)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelCampaign, filters, "act_1", "token")

	require.NoError(t, err)
	require.Len(t, out.Result, 2)
	for id, record := range out.Result {
		assert.Equal(t, id, record.ID)
		assert.Nil(t, record.ImageURL)
		assert.Nil(t, record.AdSetName)
	}
	assert.Equal(t, 0, out.EnrichmentFailures)
}

func TestFetchInsights_AdLevelEnrichesEveryRecord(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)

	deps.meta.EXPECT().
		GetInsights(gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{
			{ID: "A1", Name: "Video", AdSetName: strPtr("Lookalike"), Spend: decimal.RequireFromString("12.00"), InlineLinkClicks: 30, CTR: 1.5},
			{ID: "A2", Name: "Carrossel", AdSetName: strPtr("Remarketing"), Spend: decimal.RequireFromString("8.25"), InlineLinkClicks: 10, CTR: 0.9},
		}, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A1", "token").Return("https://cdn.example/a1.jpg", nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A2", "token").Return("https://cdn.example/a2.jpg", nil)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	require.NoError(t, err)
	require.Len(t, out.Result, 2)

	a1 := out.Result["A1"]
	require.NotNil(t, a1)
	assert.Equal(t, "Video", a1.Name)
	assert.Equal(t, "Lookalike", *a1.AdSetName)
	assert.Equal(t, "https://cdn.example/a1.jpg", *a1.ImageURL)

	a2 := out.Result["A2"]
	require.NotNil(t, a2)
	assert.Equal(t, "https://cdn.example/a2.jpg", *a2.ImageURL)
}

func TestFetchInsights_AdWithoutCreativeHasNoImage(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{{ID: "A1", AdSetName: strPtr("Set")}}, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A1", "token").Return("", nil)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	require.NoError(t, err)
	assert.Nil(t, out.Result["A1"].ImageURL)
}

func TestFetchInsights_EmptyResult(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).Return([]*domain.InsightRecord{}, nil)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	require.NoError(t, err)
	assert.Empty(t, out.Result)
}

func TestFetchInsights_UpstreamErrorIsPropagated(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)
	upstreamErr := &metadomain.UpstreamError{StatusCode: http.StatusBadRequest, Message: "Invalid OAuth access token", Code: 190}

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).Return(nil, upstreamErr)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	assert.Nil(t, out)
	assert.Same(t, upstreamErr, err)
}

func TestFetchInsights_StrictPolicyFailsWholeRequest(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)
	upstreamErr := &metadomain.UpstreamError{StatusCode: http.StatusInternalServerError, Message: "boom"}

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{{ID: "A1"}, {ID: "A2"}}, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A1", "token").Return("", upstreamErr)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A2", "token").Return("https://cdn.example/a2.jpg", nil).MaxTimes(1)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrPartialEnrichment)

	var cause *metadomain.UpstreamError
	require.True(t, errors.As(err, &cause))
	assert.Equal(t, "boom", cause.Message)
}

func TestFetchInsights_LenientPolicyReportsFailures(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyLenient)

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{{ID: "A1"}, {ID: "A2"}, {ID: "A3"}}, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A1", "token").Return("", errors.New("timeout"))
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A2", "token").Return("https://cdn.example/a2.jpg", nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A3", "token").Return("https://cdn.example/a3.jpg", nil)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	require.NoError(t, err)
	assert.Equal(t, 1, out.EnrichmentFailures)
	assert.Nil(t, out.Result["A1"].ImageURL)
	assert.Equal(t, "https://cdn.example/a2.jpg", *out.Result["A2"].ImageURL)
	assert.Equal(t, "https://cdn.example/a3.jpg", *out.Result["A3"].ImageURL)
}

func TestFetchInsights_StrictPolicyCountsOnlyTheFailedLookup(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{{ID: "A1"}, {ID: "A2"}, {ID: "A3"}}, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A1", "token").Return("", errors.New("boom"))
	for _, id := range []string{"A2", "A3"} {
		deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), id, "token").
			DoAndReturn(func(ctx context.Context, _, _ string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			})
	}

	_, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	assert.ErrorIs(t, err, ErrPartialEnrichment)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.service.metrics.ThumbnailFailures))
}

func TestFetchInsights_ThumbnailLookupsRunConcurrently(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)

	records := []*domain.InsightRecord{{ID: "A1"}, {ID: "A2"}, {ID: "A3"}}

	var started sync.WaitGroup
	started.Add(len(records))
	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).Return(records, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), gomock.Any(), "token").
		DoAndReturn(func(_ context.Context, adID, _ string) (string, error) {
			started.Done()
			select {
			case <-allStarted:
				return "https://cdn.example/" + adID + ".jpg", nil
			case <-time.After(2 * time.Second):
				return "", errors.New("lookup " + adID + " never saw the others in flight")
			}
		}).Times(len(records))

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	require.NoError(t, err)
	for id, record := range out.Result {
		require.NotNil(t, record.ImageURL, id)
		assert.Equal(t, "https://cdn.example/"+id+".jpg", *record.ImageURL)
	}
}

func TestFetchInsights_ConcurrencyLimit(t *testing.T) {
	deps := newTestService(t, config.ThumbnailPolicyStrict)
	deps.service.cfg.ThumbnailConcurrency = 2

	records := make([]*domain.InsightRecord, 0, 10)
	for _, id := range []string{"A0", "A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"} {
		records = append(records, &domain.InsightRecord{ID: id})
	}

	var inFlight, maxInFlight atomic.Int32

	deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).Return(records, nil)
	deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), gomock.Any(), "token").
		DoAndReturn(func(_ context.Context, adID, _ string) (string, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				seen := maxInFlight.Load()
				if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			return "https://cdn.example/" + adID + ".jpg", nil
		}).Times(10)

	out, err := deps.service.FetchInsights(context.Background(), domain.EntityLevelAd, filters, "act_1", "token")

	require.NoError(t, err)
	require.Len(t, out.Result, 10)
	assert.Equal(t, int32(2), maxInFlight.Load())
	for id, record := range out.Result {
		assert.Equal(t, "https://cdn.example/"+id+".jpg", *record.ImageURL)
	}
}

func TestGetInsights(t *testing.T) {
	req := domain.InsightsRequest{Type: "utm_content", Since: "2024-01-01", Until: "2024-01-31", AdAccountID: "123"}

	t.Run("conta não acompanhada", func(t *testing.T) {
		deps := newTestService(t, config.ThumbnailPolicyStrict)
		deps.adAccounts.EXPECT().GetByUserAndExternalID(gomock.Any(), 7, "act_123").Return(nil, nil)

		_, err := deps.service.GetInsights(context.Background(), 7, req)

		assert.ErrorIs(t, err, ErrAdAccountNotTracked)
	})

	t.Run("facebook não conectado", func(t *testing.T) {
		deps := newTestService(t, config.ThumbnailPolicyStrict)
		deps.adAccounts.EXPECT().GetByUserAndExternalID(gomock.Any(), 7, "act_123").Return(&domain.AdAccount{ID: "x"}, nil)
		deps.credentials.EXPECT().FacebookAccessToken(gomock.Any(), 7).Return("", nil)

		_, err := deps.service.GetInsights(context.Background(), 7, req)

		var insightErr *InsightError
		require.True(t, errors.As(err, &insightErr))
		assert.ErrorIs(t, err, ErrCredentialNotFound)
		assert.Equal(t, apiErrors.ErrProviderNotConnected, insightErr.Code)
	})

	t.Run("datas inválidas", func(t *testing.T) {
		deps := newTestService(t, config.ThumbnailPolicyStrict)

		_, err := deps.service.GetInsights(context.Background(), 7, domain.InsightsRequest{Type: "ad", Since: "2024-02-01", Until: "2024-01-01", AdAccountID: "1"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("usa o token do usuário", func(t *testing.T) {
		deps := newTestService(t, config.ThumbnailPolicyStrict)
		deps.adAccounts.EXPECT().GetByUserAndExternalID(gomock.Any(), 7, "act_123").Return(&domain.AdAccount{ID: "x"}, nil)
		deps.credentials.EXPECT().FacebookAccessToken(gomock.Any(), 7).Return("user-token", nil)
		deps.meta.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q meta.InsightsQuery) ([]*domain.InsightRecord, error) {
				assert.Equal(t, "user-token", q.AccessToken)
				assert.Equal(t, domain.EntityLevelAd, q.Level)
				assert.Equal(t, since, q.Filters.Since)
				assert.Equal(t, until, q.Filters.Until)
				return []*domain.InsightRecord{{ID: "A1"}}, nil
			})
		deps.meta.EXPECT().GetAdThumbnail(gomock.Any(), "A1", "user-token").Return("https://cdn.example/a1.jpg", nil)

		out, err := deps.service.GetInsights(context.Background(), 7, req)

		require.NoError(t, err)
		assert.Contains(t, out.Result, "A1")
	})
}
