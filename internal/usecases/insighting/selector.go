package insighting

import (
	"strings"

	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
)

// O dashboard também envia o nome do parâmetro UTM que identifica a entidade
var entityLevelByTag = map[string]domain.EntityLevel{
	"campaign":     domain.EntityLevelCampaign,
	"utm_campaign": domain.EntityLevelCampaign,
	"adset":        domain.EntityLevelAdSet,
	"ad_set":       domain.EntityLevelAdSet,
	"utm_term":     domain.EntityLevelAdSet,
	"ad":           domain.EntityLevelAd,
	"utm_content":  domain.EntityLevelAd,
}

// ResolveEntityLevel converte o tipo recebido no nível de entidade da Graph API
func ResolveEntityLevel(tag string) (domain.EntityLevel, error) {
	level, ok := entityLevelByTag[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return "", NewInsightError(ErrInvalidInput, apiErrors.ErrUnknownEntityType, "unknown entity type: "+tag)
	}
	return level, nil
}

// InsightFields lista os campos pedidos à API para o nível
func InsightFields(level domain.EntityLevel) []string {
	fields := []string{level.IDField(), level.NameField(), "spend", "inline_link_clicks", "ctr"}
	if level == domain.EntityLevelAd {
		fields = append(fields, "adset_name")
	}
	return fields
}
