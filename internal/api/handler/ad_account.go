package handler

import (
	"net/http"

	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/internal/usecases/account"
)

func AdAccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		adAccounts, err := service.ListAdAccounts(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, err, "Erro ao listar contas de anúncio")
			return
		}

		if adAccounts == nil {
			adAccounts = []*domain.AdAccount{}
		}
		writeJSON(w, r, http.StatusOK, adAccounts)
	})
}

func TrackAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		var req domain.TrackAdAccountRequest
		if !decodeBody(w, r, &req) {
			return
		}

		adAccount, err := service.TrackAdAccount(r.Context(), claims.UserID, req)
		if err != nil {
			writeError(w, r, err, "Erro ao acompanhar conta de anúncio")
			return
		}

		writeJSON(w, r, http.StatusCreated, adAccount)
	})
}

func ConnectFacebook(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		var req domain.ConnectFacebookRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := service.ConnectFacebook(r.Context(), claims.UserID, req)
		if err != nil {
			writeError(w, r, err, "Erro ao conectar conta do Facebook")
			return
		}

		writeJSON(w, r, http.StatusOK, resp)
	})
}
