package shopifyclient

import (
	"context"
	"fmt"
	"time"

	shopifydomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/domain"
)

const ordersQuery = `query Orders($first: Int!, $query: String!) {
  orders(first: $first, query: $query, sortKey: PROCESSED_AT, reverse: true) {
    edges {
      node {
        name
        processedAt
        customerJourney {
          daysToConversion
          moments {
            occurredAt
            ... on CustomerVisit {
              source
              utmParameters { source medium campaign content term }
            }
          }
        }
      }
    }
  }
}`

const shopQuery = `query Shop { shop { name myshopifyDomain } }`

type OrdersParams struct {
	Since time.Time
	Until time.Time
	Limit int
}

// OrdersSearchQuery monta o filtro de busca por processed_at (datas inclusivas)
func OrdersSearchQuery(since, until time.Time) string {
	return fmt.Sprintf("processed_at:>=%s processed_at:<=%s", since.Format(time.DateOnly), until.Format(time.DateOnly))
}

func (c *ShopifyClient) GetOrders(ctx context.Context, shop, accessToken string, params OrdersParams) ([]shopifydomain.OrderNode, error) {
	variables := map[string]any{
		"first": params.Limit,
		"query": OrdersSearchQuery(params.Since, params.Until),
	}

	var data shopifydomain.OrdersData
	if err := c.query(ctx, "orders", shop, accessToken, ordersQuery, variables, &data); err != nil {
		return nil, err
	}

	orders := make([]shopifydomain.OrderNode, 0, len(data.Orders.Edges))
	for _, edge := range data.Orders.Edges {
		orders = append(orders, edge.Node)
	}

	return orders, nil
}

func (c *ShopifyClient) GetShop(ctx context.Context, shop, accessToken string) (*shopifydomain.Shop, error) {
	var data shopifydomain.ShopData
	if err := c.query(ctx, "shop", shop, accessToken, shopQuery, nil, &data); err != nil {
		return nil, err
	}

	return &data.Shop, nil
}
