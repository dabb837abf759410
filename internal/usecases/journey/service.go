package journey

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify"
	"github.com/vfg2006/journey-insights-api/infrastructure/repository"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
	"github.com/vfg2006/journey-insights-api/pkg/utils"
)

type Journeyer interface {
	GetSessionOverview(ctx context.Context, userID int, req domain.SessionOverviewRequest) (*domain.SessionOverview, error)
}

type Service struct {
	shopRepository repository.ShopRepository
	shopifyService shopify.ShopifyIntegrator
}

func NewService(shopRepository repository.ShopRepository, shopifyService shopify.ShopifyIntegrator) Journeyer {
	return &Service{
		shopRepository: shopRepository,
		shopifyService: shopifyService,
	}
}

func (s *Service) GetSessionOverview(ctx context.Context, userID int, req domain.SessionOverviewRequest) (*domain.SessionOverview, error) {
	since, until, err := utils.ParseDateRange(req.Since, req.Until)
	if err != nil {
		return nil, NewJourneyError(ErrInvalidInput, apiErrors.ErrInvalidDateRange, err.Error())
	}

	if req.ShopName == "" {
		return nil, NewJourneyError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "shop_name is required")
	}

	shop, err := s.shopRepository.GetByUserAndName(ctx, userID, req.ShopName)
	if err != nil {
		return nil, NewJourneyError(err, apiErrors.ErrDatabaseOperation, "failed to load shop")
	}
	if shop == nil {
		return nil, NewJourneyError(ErrShopNotConnected, apiErrors.ErrProviderNotConnected, req.ShopName)
	}

	orders, err := s.shopifyService.GetOrders(ctx, shop.Name, shop.AccessToken, domain.InsightFilters{Since: since, Until: until})
	if err != nil {
		return nil, err
	}

	overview := BuildOverview(orders)

	logrus.WithFields(logrus.Fields{
		"shop":    shop.Name,
		"user_id": userID,
		"orders":  len(overview.Orders),
	}).Debug("journey: session overview built")

	return &overview, nil
}
