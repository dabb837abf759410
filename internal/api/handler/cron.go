package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
	"github.com/vfg2006/journey-insights-api/pkg/log"
)

// CronJobTypeTokenRefresh é o tipo aceito em /v1/cron/:type/run
const CronJobTypeTokenRefresh = "token-refresh"

// TokenRefresher é o agendador de renovação de tokens visto pelos handlers
type TokenRefresher interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(refresher TokenRefresher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeTokenRefresh:
			if refresher == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de renovação de tokens não disponível", nil)
				return
			}

			started := refresher.TriggerManualSync()
			log.ForContext(r.Context()).WithField("started", started).Info("Execução manual de cron job solicitada")

			message := "Cron job iniciada com sucesso"
			if !started {
				message = "Cron job já está em execução"
			}
			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": message,
				"type":    cronType,
				"started": started,
			})
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: token-refresh", nil)
		}
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(refresher TokenRefresher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if refresher != nil {
			status[CronJobTypeTokenRefresh] = refresher.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
