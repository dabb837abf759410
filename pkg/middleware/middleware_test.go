package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		validator  fakeValidator
		wantStatus int
	}{
		{
			name:       "rota pública não exige token",
			path:       "/healthcheck",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "sem header",
			path:       "/v1/insights",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "sem prefixo Bearer",
			path:       "/v1/insights",
			header:     "abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token inválido",
			path:       "/v1/insights",
			header:     "Bearer abc",
			validator:  fakeValidator{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token válido",
			path:       "/v1/insights",
			header:     "Bearer abc",
			validator:  fakeValidator{claims: &domain.Claims{UserID: 1, UserRoleID: domain.RoleMerchant}},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "sem claims", wantStatus: http.StatusUnauthorized},
		{name: "lojista", claims: &domain.Claims{UserID: 2, UserRoleID: domain.RoleMerchant}, wantStatus: http.StatusForbidden},
		{name: "admin", claims: &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := fakeValidator{claims: tt.claims, err: nil}
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/token_refresh/run", nil)
			rec := httptest.NewRecorder()

			var h http.Handler = AdminOnly()(okHandler())
			if tt.claims != nil {
				req.Header.Set("Authorization", "Bearer token")
				h = AuthMiddleware(validator)(h)
			}
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	h := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/insights", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	h := LoggingMiddleware(m)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	mrec := httptest.NewRecorder()
	m.Handler().ServeHTTP(mrec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mrec.Body.String(), `http_requests_total{method="GET",path="/healthcheck",status_code="204"} 1`)
}

func TestLogPanicMiddleware(t *testing.T) {
	h := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/insights", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
