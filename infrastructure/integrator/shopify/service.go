package shopify

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	shopifydomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/shopifyclient"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/domain"
)

type ShopifyIntegrator interface {
	GetOrders(ctx context.Context, shop, accessToken string, filters domain.InsightFilters) ([]domain.Order, error)
	CheckConnection(ctx context.Context, shop, accessToken string) (bool, error)
}

type ShopifyService struct {
	cfg    *config.Config
	Client shopifyclient.Client
}

func New(cfg *config.Config, client shopifyclient.Client) ShopifyIntegrator {
	return &ShopifyService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *ShopifyService) GetOrders(ctx context.Context, shop, accessToken string, filters domain.InsightFilters) ([]domain.Order, error) {
	nodes, err := s.Client.GetOrders(ctx, shop, accessToken, shopifyclient.OrdersParams{
		Since: filters.Since,
		Until: filters.Until,
		Limit: s.cfg.Shopify.OrderLimit,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"shop":  shop,
			"error": err.Error(),
		}).Error("journey: failed to get orders from shopify")
		return nil, err
	}

	orders := make([]domain.Order, 0, len(nodes))
	for _, node := range nodes {
		orders = append(orders, FactoryOrder(node))
	}

	return orders, nil
}

// CheckConnection valida o token com a consulta mais barata da API
func (s *ShopifyService) CheckConnection(ctx context.Context, shop, accessToken string) (bool, error) {
	if _, err := s.Client.GetShop(ctx, shop, accessToken); err != nil {
		var apiErr *shopifydomain.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// FactoryOrder converte o pedido da API mantendo a ordem dos momentos
func FactoryOrder(node shopifydomain.OrderNode) domain.Order {
	order := domain.Order{
		Name:        node.Name,
		ProcessedAt: node.ProcessedAt,
	}

	if node.CustomerJourney == nil {
		return order
	}

	journey := &domain.CustomerJourney{
		DaysToConversion: node.CustomerJourney.DaysToConversion,
		Moments:          make([]domain.Moment, 0, len(node.CustomerJourney.Moments)),
	}

	for _, m := range node.CustomerJourney.Moments {
		moment := domain.Moment{
			OccurredAt: m.OccurredAt,
			Source:     m.Source,
		}
		if m.UTMParameters != nil {
			moment.UTMParameters = domain.UTMParameters{
				Source:   m.UTMParameters.Source,
				Medium:   m.UTMParameters.Medium,
				Campaign: m.UTMParameters.Campaign,
				Content:  m.UTMParameters.Content,
				Term:     m.UTMParameters.Term,
			}
		}
		journey.Moments = append(journey.Moments, moment)
	}

	order.CustomerJourney = journey
	return order
}
