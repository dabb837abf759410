package shopifyclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	shopifydomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ShopifyClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(&config.Config{Shopify: config.Shopify{APIVersion: "2024-01"}}, metrics.New()).(*ShopifyClient)
	c.endpoint = func(string) string { return server.URL + "/graphql.json" }
	return c
}

func TestShopDomain(t *testing.T) {
	valid := map[string]string{
		"loja":                        "loja.myshopify.com",
		"Minha-Loja":                  "minha-loja.myshopify.com",
		"loja.myshopify.com":          "loja.myshopify.com",
		"https://loja.myshopify.com/": "loja.myshopify.com",
		"http://loja-2.myshopify.com": "loja-2.myshopify.com",
	}
	for input, expected := range valid {
		got, err := ShopDomain(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	invalid := []string{
		"",
		"attacker.example.net",
		"169.254.169.254",
		"internal-db.svc.cluster.local:8443",
		"loja.myshopify.com.evil.net",
		"loja.myshopify.com:8443",
		"loja.myshopify.com/admin",
		"-loja",
		"loja@evil.net",
	}
	for _, input := range invalid {
		_, err := ShopDomain(input)
		assert.ErrorIs(t, err, ErrInvalidShopDomain, input)
	}
}

func TestGraphqlEndpoint(t *testing.T) {
	c := NewClient(&config.Config{Shopify: config.Shopify{APIVersion: "2024-01"}}, nil).(*ShopifyClient)
	assert.Equal(t, "https://loja.myshopify.com/admin/api/2024-01/graphql.json", c.endpoint("loja.myshopify.com"))
}

func TestGetShop_RejectsForeignHostWithoutRequest(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.GetShop(context.Background(), "attacker.example.net", "shpat_token")

	assert.ErrorIs(t, err, ErrInvalidShopDomain)
	assert.False(t, called)
}

func TestGetOrders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "shpat_token", r.Header.Get("X-Shopify-Access-Token"))

		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "customerJourney")
		assert.Equal(t, "processed_at:>=2024-03-01 processed_at:<=2024-03-31", req.Variables["query"])
		assert.EqualValues(t, 250, req.Variables["first"])

		w.Write([]byte(`{"data":{"orders":{"edges":[
			{"node":{"name":"#1001","processedAt":"2024-03-10T12:00:00Z","customerJourney":{"daysToConversion":2,"moments":[
				{"occurredAt":"2024-03-08T12:00:00Z","source":"an unknown source","utmParameters":{"source":"meta_id"}},
				{"occurredAt":"2024-03-09T12:00:00Z","source":"Google"}
			]}}},
			{"node":{"name":"#1002","processedAt":"2024-03-11T09:30:00Z","customerJourney":null}}
		]}}}`))
	})

	orders, err := c.GetOrders(context.Background(), "loja", "shpat_token", OrdersParams{
		Since: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Limit: 250,
	})

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "#1001", orders[0].Name)
	require.NotNil(t, orders[0].CustomerJourney)
	require.Len(t, orders[0].CustomerJourney.Moments, 2)
	assert.Equal(t, "meta_id", orders[0].CustomerJourney.Moments[0].UTMParameters.Source)
	assert.Nil(t, orders[0].CustomerJourney.Moments[1].UTMParameters)
	assert.Nil(t, orders[1].CustomerJourney)
}

func TestGetOrders_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "http", status: http.StatusUnauthorized, body: `{"errors":"Invalid API key or access token"}`, wantStatus: http.StatusUnauthorized},
		{name: "graphql", status: http.StatusOK, body: `{"errors":[{"message":"Throttled"}]}`, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetOrders(context.Background(), "loja", "token", OrdersParams{Limit: 10})

			var apiErr *shopifydomain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
		})
	}
}

func TestGetShop(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"shop":{"name":"Loja","myshopifyDomain":"loja.myshopify.com"}}}`))
	})

	shop, err := c.GetShop(context.Background(), "loja", "token")

	require.NoError(t, err)
	assert.Equal(t, "loja.myshopify.com", shop.MyshopifyDomain)
}
