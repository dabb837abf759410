package journey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	shopifymocks "github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/mocks"
	repomocks "github.com/vfg2006/journey-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestService_GetSessionOverview(t *testing.T) {
	ctx := context.Background()
	shop := &domain.Shop{ID: "shop-1", UserID: 7, Name: "minha-loja", AccessToken: "shpat_123"}
	filters := domain.InsightFilters{
		Since: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	validReq := domain.SessionOverviewRequest{Since: "2024-03-01", Until: "2024-03-31", ShopName: "minha-loja"}

	tests := []struct {
		name      string
		req       domain.SessionOverviewRequest
		setup     func(shops *repomocks.MockShopRepository, shopify *shopifymocks.MockShopifyIntegrator)
		wantErr   error
		wantCode  string
		assertOut func(t *testing.T, out *domain.SessionOverview)
	}{
		{
			name: "visão montada a partir dos pedidos",
			req:  validReq,
			setup: func(shops *repomocks.MockShopRepository, shopify *shopifymocks.MockShopifyIntegrator) {
				shops.EXPECT().GetByUserAndName(ctx, 7, "minha-loja").Return(shop, nil)
				shopify.EXPECT().GetOrders(ctx, "minha-loja", "shpat_123", filters).Return([]domain.Order{
					{
						Name:        "#1001",
						ProcessedAt: processedAt,
						CustomerJourney: &domain.CustomerJourney{
							DaysToConversion: 2,
							Moments: []domain.Moment{
								{OccurredAt: processedAt.Add(-48 * time.Hour), Source: "an unknown source", UTMParameters: domain.UTMParameters{Source: "meta_id"}},
							},
						},
					},
					{Name: "#1002", ProcessedAt: processedAt},
				}, nil)
			},
			assertOut: func(t *testing.T, out *domain.SessionOverview) {
				require.Len(t, out.Orders, 2)
				assert.Equal(t, "facebook", out.Orders[0].Sessions[0].SourceLabel)
				assert.Nil(t, out.Orders[1].SessionCount)
				require.NotNil(t, out.AverageMomentCount)
				assert.Equal(t, 1.0, *out.AverageMomentCount)
				assert.Equal(t, 2.0, *out.AverageDaysToConversion)
			},
		},
		{
			name:     "intervalo de datas invertido",
			req:      domain.SessionOverviewRequest{Since: "2024-03-31", Until: "2024-03-01", ShopName: "minha-loja"},
			setup:    func(*repomocks.MockShopRepository, *shopifymocks.MockShopifyIntegrator) {},
			wantErr:  ErrInvalidInput,
			wantCode: apiErrors.ErrInvalidDateRange,
		},
		{
			name:     "loja obrigatória",
			req:      domain.SessionOverviewRequest{Since: "2024-03-01", Until: "2024-03-31"},
			setup:    func(*repomocks.MockShopRepository, *shopifymocks.MockShopifyIntegrator) {},
			wantErr:  ErrInvalidInput,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "loja não conectada",
			req:  validReq,
			setup: func(shops *repomocks.MockShopRepository, _ *shopifymocks.MockShopifyIntegrator) {
				shops.EXPECT().GetByUserAndName(ctx, 7, "minha-loja").Return(nil, nil)
			},
			wantErr:  ErrShopNotConnected,
			wantCode: apiErrors.ErrProviderNotConnected,
		},
		{
			name: "falha da Shopify é repassada",
			req:  validReq,
			setup: func(shops *repomocks.MockShopRepository, shopify *shopifymocks.MockShopifyIntegrator) {
				shops.EXPECT().GetByUserAndName(ctx, 7, "minha-loja").Return(shop, nil)
				shopify.EXPECT().GetOrders(ctx, "minha-loja", "shpat_123", filters).Return(nil, errShopifyDown)
			},
			wantErr: errShopifyDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			shops := repomocks.NewMockShopRepository(ctrl)
			shopify := shopifymocks.NewMockShopifyIntegrator(ctrl)
			tt.setup(shops, shopify)

			out, err := NewService(shops, shopify).GetSessionOverview(ctx, 7, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
				if tt.wantCode != "" {
					var journeyErr *JourneyError
					require.ErrorAs(t, err, &journeyErr)
					assert.Equal(t, tt.wantCode, journeyErr.Code)
				}
				return
			}

			require.NoError(t, err)
			tt.assertOut(t, out)
		})
	}
}

var errShopifyDown = errors.New("shopify unavailable")
