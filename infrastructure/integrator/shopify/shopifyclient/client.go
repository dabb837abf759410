package shopifyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	shopifydomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
)

const apiName = "shopify"

type Client interface {
	GetOrders(ctx context.Context, shop, accessToken string, params OrdersParams) ([]shopifydomain.OrderNode, error)
	GetShop(ctx context.Context, shop, accessToken string) (*shopifydomain.Shop, error)
}

type ShopifyClient struct {
	httpClient *http.Client
	apiVersion string
	metrics    *metrics.Metrics
	endpoint   func(domain string) string
}

func NewClient(cfg *config.Config, m *metrics.Metrics) Client {
	c := &ShopifyClient{
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
		apiVersion: cfg.Shopify.APIVersion,
		metrics:    m,
	}
	c.endpoint = c.graphqlEndpoint
	return c
}

var (
	ErrInvalidShopDomain = errors.New("invalid shop domain")

	shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.myshopify\.com)?$`)
)

const shopifySuffix = ".myshopify.com"

// ShopDomain devolve o domínio .myshopify.com da loja. Só aceita o handle
// ou o próprio domínio da Shopify, nunca um host arbitrário.
func ShopDomain(shop string) (string, error) {
	shop = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(shop), "https://"), "http://")
	shop = strings.ToLower(strings.TrimSuffix(shop, "/"))

	if !shopDomainPattern.MatchString(shop) {
		return "", fmt.Errorf("%w: %q", ErrInvalidShopDomain, shop)
	}

	return strings.TrimSuffix(shop, shopifySuffix) + shopifySuffix, nil
}

func (c *ShopifyClient) graphqlEndpoint(domain string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", domain, c.apiVersion)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage              `json:"data"`
	Errors []shopifydomain.GraphQLError `json:"errors"`
}

// query executa a consulta GraphQL e decodifica data em out
func (c *ShopifyClient) query(ctx context.Context, operation, shop, accessToken, query string, variables map[string]any, out any) error {
	domain, err := ShopDomain(shop)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("erro ao serializar a consulta: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(domain), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(operation, "transport")
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	c.recordCall(operation, strconv.Itoa(resp.StatusCode), time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.recordFailure(operation, "status_"+strconv.Itoa(resp.StatusCode))
		logrus.WithFields(logrus.Fields{
			"shop":        shop,
			"operation":   operation,
			"status_code": resp.StatusCode,
		}).Warn("shopifyclient: api returned an error")
		return &shopifydomain.APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		c.recordFailure(operation, "graphql")
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return &shopifydomain.APIError{StatusCode: http.StatusBadGateway, Message: strings.Join(messages, "; ")}
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("erro ao decodificar data: %w", err)
	}

	return nil
}

func (c *ShopifyClient) recordCall(operation, status string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(apiName, operation, status, d)
	}
}

func (c *ShopifyClient) recordFailure(operation, reason string) {
	if c.metrics != nil {
		c.metrics.RecordExternalAPIFailure(apiName, operation, reason)
	}
}
