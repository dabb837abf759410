package meta

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/journey-insights-api/internal/domain"
)

// InsightsQuery descreve uma consulta de insights em um nível de entidade
type InsightsQuery struct {
	AdAccountID string
	AccessToken string
	Level       domain.EntityLevel
	Fields      []string
	Filters     domain.InsightFilters
	Limit       int
}

type MetaIntegrator interface {
	GetInsights(ctx context.Context, query InsightsQuery) ([]*domain.InsightRecord, error)
	GetAdThumbnail(ctx context.Context, adID, accessToken string) (string, error)
	ConnectAccount(ctx context.Context, code, redirectURI string) (*domain.Account, error)
	RefreshToken(ctx context.Context, accessToken string) (string, *time.Time, error)
}

type MetaService struct {
	Client metaclient.Client
	now    func() time.Time
}

func New(client metaclient.Client) MetaIntegrator {
	return &MetaService{
		Client: client,
		now:    time.Now,
	}
}

func (s *MetaService) GetInsights(ctx context.Context, query InsightsQuery) ([]*domain.InsightRecord, error) {
	rows, err := s.Client.GetInsights(ctx, query.AdAccountID, query.AccessToken, metaclient.InsightsParams{
		Fields: query.Fields,
		Level:  string(query.Level),
		Since:  query.Filters.Since,
		Until:  query.Filters.Until,
		Limit:  query.Limit,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": query.AdAccountID,
			"level":         query.Level,
			"error":         err.Error(),
		}).Error("insights: failed to get insights from API")
		return nil, err
	}

	records := make([]*domain.InsightRecord, 0, len(rows))
	for _, row := range rows {
		record, err := FactoryInsightRecord(row, query.Level)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_account_id": query.AdAccountID,
				"level":         query.Level,
				"error":         err.Error(),
			}).Error("insights: malformed row returned by API")
			return nil, err
		}
		records = append(records, record)
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": query.AdAccountID,
		"level":         query.Level,
		"rows":          len(records),
	}).Debug("insights: successfully retrieved insights")

	return records, nil
}

// GetAdThumbnail retorna o thumbnail do primeiro criativo do anúncio, ou "" quando não há criativo
func (s *MetaService) GetAdThumbnail(ctx context.Context, adID, accessToken string) (string, error) {
	creatives, err := s.Client.GetAdCreatives(ctx, adID, accessToken)
	if err != nil {
		return "", err
	}

	if len(creatives) == 0 {
		return "", nil
	}

	return creatives[0].ThumbnailURL, nil
}

// ConnectAccount troca o código OAuth por um token de longa duração e identifica a conta
func (s *MetaService) ConnectAccount(ctx context.Context, code, redirectURI string) (*domain.Account, error) {
	shortLived, err := s.Client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}

	longLived, err := s.Client.GetLongLivedToken(ctx, shortLived.AccessToken)
	if err != nil {
		return nil, err
	}

	me, err := s.Client.GetMe(ctx, longLived.AccessToken)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		Provider:          domain.ProviderFacebook,
		ProviderAccountID: me.ID,
		AccessToken:       longLived.AccessToken,
		TokenExpiresAt:    s.expiresAt(longLived.ExpiresIn),
	}, nil
}

// RefreshToken troca um token de longa duração por um novo
func (s *MetaService) RefreshToken(ctx context.Context, accessToken string) (string, *time.Time, error) {
	resp, err := s.Client.GetLongLivedToken(ctx, accessToken)
	if err != nil {
		return "", nil, err
	}

	return resp.AccessToken, s.expiresAt(resp.ExpiresIn), nil
}

func (s *MetaService) expiresAt(expiresIn int64) *time.Time {
	if expiresIn <= 0 {
		return nil
	}
	t := metaclient.CalculateTokenExpiration(s.now(), expiresIn)
	return &t
}

// MalformedResponseType marca linhas com números que a Graph API não deveria devolver
const MalformedResponseType = "MalformedResponse"

func malformedField(id, field, value string) *metadomain.UpstreamError {
	return &metadomain.UpstreamError{
		StatusCode: http.StatusBadGateway,
		Type:       MalformedResponseType,
		Message:    fmt.Sprintf("insight %s: invalid %s %q", id, field, value),
	}
}

// FactoryInsightRecord converte a linha da API no registro de domínio.
// Campos numéricos ausentes valem zero; valores malformados falham a linha.
func FactoryInsightRecord(row metadomain.InsightRow, level domain.EntityLevel) (*domain.InsightRecord, error) {
	record := &domain.InsightRecord{
		ID:        row.EntityID(string(level)),
		Name:      row.EntityName(string(level)),
		Spend:     decimal.Zero,
		DateStart: row.DateStart,
		DateStop:  row.DateStop,
	}

	if row.Spend != "" {
		spend, err := decimal.NewFromString(strings.TrimSpace(row.Spend))
		if err != nil {
			return nil, malformedField(record.ID, "spend", row.Spend)
		}
		record.Spend = spend
	}

	if row.InlineLinkClicks != "" {
		clicks, err := strconv.Atoi(strings.TrimSpace(row.InlineLinkClicks))
		if err != nil {
			return nil, malformedField(record.ID, "inline_link_clicks", row.InlineLinkClicks)
		}
		record.InlineLinkClicks = clicks
	}

	if row.CTR != "" {
		ctr, err := strconv.ParseFloat(strings.TrimSpace(row.CTR), 64)
		if err != nil {
			return nil, malformedField(record.ID, "ctr", row.CTR)
		}
		record.CTR = ctr
	}

	if level == domain.EntityLevelAd {
		adSetName := row.AdSetName
		record.AdSetName = &adSetName
	}

	return record, nil
}
