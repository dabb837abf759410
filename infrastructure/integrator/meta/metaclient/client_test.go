package metaclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Meta: config.Meta{
			URL:       server.URL + "/v22.0",
			AppID:     "app-id",
			AppSecret: "app-secret",
		},
	}

	return NewClient(cfg, metrics.New())
}

func TestGetInsights_BuildsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/act_123/insights", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "ad_id,ad_name,spend,inline_link_clicks,ctr,adset_name", q.Get("fields"))
		assert.Equal(t, "ad", q.Get("level"))
		assert.Equal(t, `{"since":"2024-01-01","until":"2024-01-31"}`, q.Get("time_range"))
		assert.Equal(t, "1000", q.Get("limit"))
		assert.Equal(t, "token", q.Get("access_token"))

		w.Write([]byte(`{"data":[{"ad_id":"A1","ad_name":"Ad 1","adset_name":"Set","spend":"10.50","inline_link_clicks":"4","ctr":"1.2"}]}`))
	})

	rows, err := client.GetInsights(context.Background(), "123", "token", InsightsParams{
		Fields: []string{"ad_id", "ad_name", "spend", "inline_link_clicks", "ctr", "adset_name"},
		Level:  "ad",
		Since:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Limit:  1000,
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].AdID)
	assert.Equal(t, "Set", rows[0].AdSetName)
	assert.Equal(t, "10.50", rows[0].Spend)
}

func TestGetInsights_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"fbtrace_id":"abc"}}`))
	})

	_, err := client.GetInsights(context.Background(), "act_1", "expired", InsightsParams{Level: "campaign", Limit: 1000})

	var upstreamErr *metadomain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Equal(t, "Error validating access token", upstreamErr.Message)
	assert.Equal(t, 190, upstreamErr.Code)
	assert.True(t, upstreamErr.TokenExpired())
}

func TestGetInsights_NonJSONError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream unavailable"))
	})

	_, err := client.GetInsights(context.Background(), "act_1", "token", InsightsParams{Level: "campaign"})

	var upstreamErr *metadomain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
	assert.Equal(t, "upstream unavailable", upstreamErr.Message)
}

func TestGetInsights_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetInsights(ctx, "act_1", "token", InsightsParams{Level: "campaign"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGetAdCreatives(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/A1/adcreatives", r.URL.Path)
		assert.Equal(t, "thumbnail_url", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"data":[{"id":"C1","thumbnail_url":"https://cdn.example/a1.jpg"}]}`))
	})

	creatives, err := client.GetAdCreatives(context.Background(), "A1", "token")

	require.NoError(t, err)
	require.Len(t, creatives, 1)
	assert.Equal(t, "https://cdn.example/a1.jpg", creatives[0].ThumbnailURL)
}

func TestGetLongLivedToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/v22.0/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", q.Get("grant_type"))
		assert.Equal(t, "short", q.Get("fb_exchange_token"))
		w.Write([]byte(`{"access_token":"long","token_type":"bearer","expires_in":5184000}`))
	})

	resp, err := client.GetLongLivedToken(context.Background(), "short")

	require.NoError(t, err)
	assert.Equal(t, "long", resp.AccessToken)
	assert.Equal(t, int64(5184000), resp.ExpiresIn)

	_, err = client.GetLongLivedToken(context.Background(), "")
	assert.Error(t, err)
}

func TestExchangeCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/oauth/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "https://app.example/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"short","token_type":"bearer","expires_in":3600}`))
	})

	resp, err := client.ExchangeCode(context.Background(), "the-code", "https://app.example/callback")

	require.NoError(t, err)
	assert.Equal(t, "short", resp.AccessToken)
	assert.InDelta(t, 3600, resp.ExpiresIn, 5)
}

func TestGetMe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/me", r.URL.Path)
		w.Write([]byte(`{"id":"10001","name":"Merchant"}`))
	})

	me, err := client.GetMe(context.Background(), "long")

	require.NoError(t, err)
	assert.Equal(t, "10001", me.ID)
}

func TestNormalizeAdAccountID(t *testing.T) {
	assert.Equal(t, "act_123", NormalizeAdAccountID("123"))
	assert.Equal(t, "act_123", NormalizeAdAccountID("act_123"))
}

func TestCalculateTokenExpiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(59*24*time.Hour), CalculateTokenExpiration(now, 60*24*3600))
	assert.Equal(t, now.Add(30*time.Minute), CalculateTokenExpiration(now, 3600))
}
