package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/journey-insights-api/pkg/log"
)

// GetInsights responde com os registros indexados pelo ID da entidade
func GetInsights(service insighting.Insighter, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		var req domain.InsightsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		out, err := service.GetInsights(ctx, claims.UserID, req)
		if err != nil {
			writeError(w, r, err, "Erro ao buscar insights")
			return
		}

		if out.EnrichmentFailures > 0 {
			w.Header().Set(EnrichmentFailuresHeader, strconv.Itoa(out.EnrichmentFailures))
			log.ForContext(ctx).WithFields(log.Fields{
				"ad_account_id":                req.AdAccountID,
				"insights_enrichment_failures": out.EnrichmentFailures,
			}).Warn("Insights retornados sem alguns thumbnails")
		}

		writeJSON(w, r, http.StatusOK, out.Result)
	})
}
