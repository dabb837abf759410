package handler

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	shopifydomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/internal/usecases/account"
	"github.com/vfg2006/journey-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/journey-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/journey-insights-api/internal/usecases/journey"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
	"github.com/vfg2006/journey-insights-api/pkg/log"
	"github.com/vfg2006/journey-insights-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EnrichmentFailuresHeader informa quantos registros ficaram sem thumbnail
const EnrichmentFailuresHeader = "X-Enrichment-Failures"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
		return false
	}
	return true
}

func claimsOrUnauthorized(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}

// upstreamStatus repassa o status do serviço externo; respostas sem status de erro viram 502
func upstreamStatus(status int) int {
	if status < http.StatusBadRequest {
		return http.StatusBadGateway
	}
	return status
}

// writeError converte os erros dos casos de uso e dos integradores na resposta padronizada
func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var (
		insightErr *insighting.InsightError
		journeyErr *journey.JourneyError
		accountErr *account.AccountError
		authErr    *authenticating.AuthError
		metaErr    *metadomain.UpstreamError
		shopifyErr *shopifydomain.APIError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error(message)
		apiErrors.WriteError(w, apiErrors.ErrUpstreamTimeout, "Serviço externo não respondeu a tempo", nil)

	case errors.Is(err, insighting.ErrPartialEnrichment) && errors.As(err, &insightErr):
		logger.Error(message)
		apiErrors.WriteError(w, insightErr.Code, insightErr.Error(), nil)

	case errors.As(err, &metaErr):
		logger.Warn(message)
		apiErrors.WriteErrorWithStatus(w, upstreamStatus(metaErr.StatusCode), apiErrors.ErrExternalService, metaErr.Message, map[string]any{
			"provider":      "meta",
			"type":          metaErr.Type,
			"code":          metaErr.Code,
			"token_expired": metaErr.TokenExpired(),
			"fbtrace_id":    metaErr.FBTraceID,
		})

	case errors.As(err, &shopifyErr):
		logger.Warn(message)
		apiErrors.WriteErrorWithStatus(w, upstreamStatus(shopifyErr.StatusCode), apiErrors.ErrExternalService, shopifyErr.Message, map[string]any{
			"provider": "shopify",
		})

	case errors.As(err, &insightErr):
		logger.Warn(message)
		apiErrors.WriteError(w, insightErr.Code, insightErr.Error(), nil)

	case errors.As(err, &journeyErr):
		logger.Warn(message)
		apiErrors.WriteError(w, journeyErr.Code, journeyErr.Error(), nil)

	case errors.As(err, &accountErr):
		logger.Warn(message)
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)

	case errors.As(err, &authErr):
		logger.Warn(message)
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)

	default:
		logger.Error(message)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
	}
}
