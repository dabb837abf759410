package handler

import (
	"net/http"

	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/internal/usecases/authenticating"
)

func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err, "Erro ao realizar login")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"token": token,
		})
	})
}

func Register(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := service.Register(r.Context(), req)
		if err != nil {
			writeError(w, r, err, "Erro ao cadastrar usuário")
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	})
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrUnauthorized(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	})
}
