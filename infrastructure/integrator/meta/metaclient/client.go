package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
	"golang.org/x/time/rate"
)

const apiName = "meta"

type Client interface {
	GetInsights(ctx context.Context, adAccountID, accessToken string, params InsightsParams) ([]metadomain.InsightRow, error)
	GetAdCreatives(ctx context.Context, adID, accessToken string) ([]metadomain.AdCreative, error)
	ExchangeCode(ctx context.Context, code, redirectURI string) (*metadomain.TokenResponse, error)
	GetLongLivedToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error)
	GetMe(ctx context.Context, accessToken string) (*metadomain.User, error)
}

type MetaClient struct {
	cfg        config.Meta
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

func NewClient(cfg *config.Config, m *metrics.Metrics) Client {
	limit := rate.Inf
	if cfg.Meta.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.Meta.RateLimitRPS)
	}

	burst := cfg.Meta.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	return &MetaClient{
		cfg: cfg.Meta,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(limit, burst),
		metrics: m,
	}
}

// get faz um GET na Graph API respeitando o rate limit compartilhado.
// Respostas diferentes de 200 viram *metadomain.UpstreamError.
func (c *MetaClient) get(ctx context.Context, operation, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%s/%s?%s", c.cfg.URL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(operation, "transport")
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"error":     err.Error(),
		}).Error("metaclient: request failed")
		return nil, err
	}
	defer resp.Body.Close()

	c.recordCall(operation, strconv.Itoa(resp.StatusCode), time.Since(start))

	return c.HandleResponse(operation, resp)
}

// HandleResponse devolve o corpo em caso de sucesso ou o erro da API
func (c *MetaClient) HandleResponse(operation string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	upstreamErr := metadomain.NewUpstreamError(resp.StatusCode, body)
	reason := "status_" + strconv.Itoa(resp.StatusCode)
	if upstreamErr.TokenExpired() {
		reason = "token_expired"
	}
	c.recordFailure(operation, reason)

	logrus.WithFields(logrus.Fields{
		"operation":   operation,
		"status_code": resp.StatusCode,
		"code":        upstreamErr.Code,
		"fbtrace_id":  upstreamErr.FBTraceID,
	}).Warn("metaclient: api returned an error")

	return nil, upstreamErr
}

func (c *MetaClient) recordCall(operation, status string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(apiName, operation, status, d)
	}
}

func (c *MetaClient) recordFailure(operation, reason string) {
	if c.metrics != nil {
		c.metrics.RecordExternalAPIFailure(apiName, operation, reason)
	}
}
