package metaclient

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetAdCreatives(ctx context.Context, adID, accessToken string) ([]metadomain.AdCreative, error) {
	query := url.Values{}
	query.Add("fields", "thumbnail_url")
	query.Add("access_token", accessToken)

	body, err := c.get(ctx, "adcreatives", adID+"/adcreatives", query)
	if err != nil {
		return nil, err
	}

	var response metadomain.AdCreativesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).WithField("ad_id", adID).Error("metaclient: failed to decode adcreatives response")
		return nil, err
	}

	return response.Data, nil
}
