package handler

import (
	"net/http"

	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/internal/usecases/account"
	"github.com/vfg2006/journey-insights-api/internal/usecases/journey"
)

// ListShops devolve as lojas no formato {id, name, shop{name}}
func ListShops(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		shops, err := service.ListConnectedShops(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, err, "Erro ao listar lojas")
			return
		}

		writeJSON(w, r, http.StatusOK, shops)
	})
}

func ConnectShop(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		var req domain.ConnectShopRequest
		if !decodeBody(w, r, &req) {
			return
		}

		shop, err := service.ConnectShop(r.Context(), claims.UserID, req)
		if err != nil {
			writeError(w, r, err, "Erro ao conectar loja")
			return
		}

		writeJSON(w, r, http.StatusCreated, shop)
	})
}

func GetSessionOverview(service journey.Journeyer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		var req domain.SessionOverviewRequest
		if !decodeBody(w, r, &req) {
			return
		}

		overview, err := service.GetSessionOverview(r.Context(), claims.UserID, req)
		if err != nil {
			writeError(w, r, err, "Erro ao montar visão de sessões")
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	})
}
