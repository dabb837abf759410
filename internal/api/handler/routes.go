package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/journey-insights-api/internal/api/handler/router"
	"github.com/vfg2006/journey-insights-api/internal/usecases/account"
	"github.com/vfg2006/journey-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/journey-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/journey-insights-api/internal/usecases/journey"
	"github.com/vfg2006/journey-insights-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Insights(service insighting.Insighter, timeout time.Duration) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights",
			Method:      http.MethodPost,
			Handler:     GetInsights(service, timeout),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/adAccounts",
			Method:      http.MethodGet,
			Handler:     AdAccountList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/adAccounts",
			Method:      http.MethodPost,
			Handler:     TrackAdAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/connect/facebook",
			Method:      http.MethodPost,
			Handler:     ConnectFacebook(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Shops(accountService account.AccountService, journeyService journey.Journeyer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/shops",
			Method:      http.MethodGet,
			Handler:     ListShops(accountService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/shops",
			Method:      http.MethodPost,
			Handler:     ConnectShop(accountService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/shops/sessions",
			Method:      http.MethodPost,
			Handler:     GetSessionOverview(journeyService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(refresher TokenRefresher) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(refresher),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(refresher),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
