package insighting

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/journey-insights-api/infrastructure/repository"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
	"github.com/vfg2006/journey-insights-api/pkg/metrics"
	"github.com/vfg2006/journey-insights-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// CredentialStore resolve o token do Facebook do usuário. Retorna "" quando
// o usuário não conectou a conta.
type CredentialStore interface {
	FacebookAccessToken(ctx context.Context, userID int) (string, error)
}

type Insighter interface {
	GetInsights(ctx context.Context, userID int, req domain.InsightsRequest) (*domain.FetchInsightsOutput, error)
	FetchInsights(ctx context.Context, level domain.EntityLevel, filters domain.InsightFilters, adAccountID, accessToken string) (*domain.FetchInsightsOutput, error)
}

type Service struct {
	cfg                 config.Insights
	metaService         meta.MetaIntegrator
	credentials         CredentialStore
	adAccountRepository repository.AdAccountRepository
	metrics             *metrics.Metrics
}

func NewService(
	cfg *config.Config,
	metaService meta.MetaIntegrator,
	credentials CredentialStore,
	adAccountRepository repository.AdAccountRepository,
	m *metrics.Metrics,
) Insighter {
	return &Service{
		cfg:                 cfg.Insights,
		metaService:         metaService,
		credentials:         credentials,
		adAccountRepository: adAccountRepository,
		metrics:             m,
	}
}

// GetInsights valida a requisição do dashboard, resolve o token do usuário e busca os insights
func (s *Service) GetInsights(ctx context.Context, userID int, req domain.InsightsRequest) (*domain.FetchInsightsOutput, error) {
	since, until, err := utils.ParseDateRange(req.Since, req.Until)
	if err != nil {
		return nil, NewInsightError(ErrInvalidInput, apiErrors.ErrInvalidDateRange, err.Error())
	}

	level, err := ResolveEntityLevel(req.Type)
	if err != nil {
		return nil, err
	}

	if req.AdAccountID == "" {
		return nil, NewInsightError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "ad_account_id is required")
	}
	adAccountID := metaclient.NormalizeAdAccountID(req.AdAccountID)

	tracked, err := s.adAccountRepository.GetByUserAndExternalID(ctx, userID, adAccountID)
	if err != nil {
		return nil, NewInsightError(err, apiErrors.ErrDatabaseOperation, "failed to check ad account")
	}
	if tracked == nil {
		return nil, NewInsightError(ErrAdAccountNotTracked, apiErrors.ErrResourceNotFound, adAccountID)
	}

	accessToken, err := s.credentials.FacebookAccessToken(ctx, userID)
	if err != nil {
		return nil, NewInsightError(err, apiErrors.ErrDatabaseOperation, "failed to load facebook credential")
	}
	if accessToken == "" {
		return nil, NewInsightError(ErrCredentialNotFound, apiErrors.ErrProviderNotConnected, "")
	}

	return s.FetchInsights(ctx, level, domain.InsightFilters{Since: since, Until: until}, adAccountID, accessToken)
}

// FetchInsights faz uma consulta de insights no nível informado e, para anúncios,
// busca o thumbnail de cada criativo em paralelo.
func (s *Service) FetchInsights(
	ctx context.Context,
	level domain.EntityLevel,
	filters domain.InsightFilters,
	adAccountID, accessToken string,
) (*domain.FetchInsightsOutput, error) {
	if err := validate(level, filters, adAccountID, accessToken); err != nil {
		return nil, err
	}

	records, err := s.metaService.GetInsights(ctx, meta.InsightsQuery{
		AdAccountID: adAccountID,
		AccessToken: accessToken,
		Level:       level,
		Fields:      InsightFields(level),
		Filters:     filters,
		Limit:       s.cfg.RowLimit,
	})
	if err != nil {
		return nil, err
	}

	output := &domain.FetchInsightsOutput{}

	if level == domain.EntityLevelAd && len(records) > 0 {
		failures, err := s.enrichThumbnails(ctx, records, accessToken)
		if err != nil {
			return nil, err
		}
		output.EnrichmentFailures = failures
	}

	output.Result = domain.NewInsightsResult(records)

	if s.metrics != nil {
		s.metrics.InsightRecordsReturned.WithLabelValues(string(level)).Add(float64(len(output.Result)))
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id":       adAccountID,
		"level":               level,
		"records":             len(output.Result),
		"enrichment_failures": output.EnrichmentFailures,
	}).Debug("insights: fetched")

	return output, nil
}

func validate(level domain.EntityLevel, filters domain.InsightFilters, adAccountID, accessToken string) error {
	if !level.IsValid() {
		return NewInsightError(ErrInvalidInput, apiErrors.ErrUnknownEntityType, "unknown entity type: "+string(level))
	}
	if filters.Since.IsZero() || filters.Until.IsZero() || filters.Since.After(filters.Until) {
		return NewInsightError(ErrInvalidInput, apiErrors.ErrInvalidDateRange, "since must not be after until")
	}
	if adAccountID == "" {
		return NewInsightError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "ad account id is required")
	}
	if accessToken == "" {
		return NewInsightError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "access token is required")
	}
	return nil
}

// enrichThumbnails busca um criativo por registro. Cada goroutine escreve apenas
// no próprio registro. Com a política strict a primeira falha cancela as demais.
func (s *Service) enrichThumbnails(ctx context.Context, records []*domain.InsightRecord, accessToken string) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.ThumbnailConcurrency > 0 {
		g.SetLimit(s.cfg.ThumbnailConcurrency)
	}

	strict := s.cfg.ThumbnailPolicy != config.ThumbnailPolicyLenient
	var failures atomic.Int32

	for _, record := range records {
		g.Go(func() error {
			thumbnailURL, err := s.metaService.GetAdThumbnail(gctx, record.ID, accessToken)
			if err != nil {
				// cancelada porque outra busca já falhou
				if gctx.Err() != nil && ctx.Err() == nil {
					return err
				}

				if s.metrics != nil {
					s.metrics.ThumbnailFailures.Inc()
				}

				if strict {
					return &InsightError{
						Err:     ErrPartialEnrichment,
						Code:    apiErrors.ErrPartialEnrichment,
						Details: "ad " + record.ID,
						Cause:   err,
					}
				}

				failures.Add(1)
				logrus.WithFields(logrus.Fields{
					"ad_id": record.ID,
					"error": err.Error(),
				}).Warn("insights: failed to fetch creative thumbnail")
				return nil
			}

			if thumbnailURL != "" {
				record.ImageURL = &thumbnailURL
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	// Timeout da requisição não é falha parcial
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return int(failures.Load()), nil
}
