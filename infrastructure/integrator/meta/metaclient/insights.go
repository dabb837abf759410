package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
)

// InsightsParams são os parâmetros de uma consulta ao endpoint /{act_id}/insights
type InsightsParams struct {
	Fields []string
	Level  string
	Since  time.Time
	Until  time.Time
	Limit  int
}

// GetInsights faz uma única chamada, sem seguir a paginação
func (c *MetaClient) GetInsights(ctx context.Context, adAccountID, accessToken string, params InsightsParams) ([]metadomain.InsightRow, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", params.Since.Format(time.DateOnly), params.Until.Format(time.DateOnly))

	query := url.Values{}
	query.Add("fields", strings.Join(params.Fields, ","))
	query.Add("level", params.Level)
	query.Add("time_range", timeRange)
	query.Add("limit", strconv.Itoa(params.Limit))
	query.Add("access_token", accessToken)

	body, err := c.get(ctx, "insights", NormalizeAdAccountID(adAccountID)+"/insights", query)
	if err != nil {
		return nil, err
	}

	var response metadomain.InsightsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("metaclient: failed to decode insights response")
		return nil, err
	}

	if response.Paging.Next != "" {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": adAccountID,
			"level":         params.Level,
			"limit":         params.Limit,
		}).Warn("metaclient: insights truncated at row limit")
	}

	return response.Data, nil
}

// NormalizeAdAccountID garante o prefixo act_ exigido pela Graph API
func NormalizeAdAccountID(adAccountID string) string {
	if strings.HasPrefix(adAccountID, "act_") {
		return adAccountID
	}
	return "act_" + adAccountID
}
