package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityLevel é a granularidade em que a performance de anúncios é agregada
type EntityLevel string

const (
	EntityLevelCampaign EntityLevel = "campaign"
	EntityLevelAdSet    EntityLevel = "adset"
	EntityLevelAd       EntityLevel = "ad"
)

func (l EntityLevel) IsValid() bool {
	switch l {
	case EntityLevelCampaign, EntityLevelAdSet, EntityLevelAd:
		return true
	}
	return false
}

// IDField e NameField retornam os campos da API de insights que identificam a entidade
func (l EntityLevel) IDField() string   { return string(l) + "_id" }
func (l EntityLevel) NameField() string { return string(l) + "_name" }

// InsightsRequest é o corpo recebido pelo endpoint de insights
type InsightsRequest struct {
	Type        string `json:"type"`
	Since       string `json:"since"`
	Until       string `json:"until"`
	AdAccountID string `json:"ad_account_id"`
}

// InsightFilters representa o intervalo de datas (inclusivo) de uma consulta
type InsightFilters struct {
	Since time.Time
	Until time.Time
}

// InsightRecord é uma linha de performance de uma campanha, conjunto de anúncios ou anúncio
type InsightRecord struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Spend            decimal.Decimal `json:"spend"`
	InlineLinkClicks int             `json:"inline_link_clicks"`
	CTR              float64         `json:"ctr"`
	AdSetName        *string         `json:"adset_name,omitempty"`
	ImageURL         *string         `json:"image_url,omitempty"`
	DateStart        string          `json:"date_start,omitempty"`
	DateStop         string          `json:"date_stop,omitempty"`
}

// InsightsResult indexa os registros pelo ID da entidade. result[k].ID == k sempre.
type InsightsResult map[string]*InsightRecord

// NewInsightsResult reduz a lista de registros para o mapa indexado por ID
func NewInsightsResult(records []*InsightRecord) InsightsResult {
	result := make(InsightsResult, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		result[record.ID] = record
	}
	return result
}

// FetchInsightsOutput carrega o resultado e quantos thumbnails não puderam ser obtidos
type FetchInsightsOutput struct {
	Result             InsightsResult
	EnrichmentFailures int
}
