package metaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// ExchangeCode troca o código do login do Facebook por um token de curta duração
func (c *MetaClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*metadomain.TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("código de autorização não pode ser vazio")
	}

	endpoint := facebook.Endpoint
	endpoint.TokenURL = c.cfg.URL + "/oauth/access_token"
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	oauthCfg := &oauth2.Config{
		ClientID:     c.cfg.AppID,
		ClientSecret: c.cfg.AppSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURI,
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	token, err := oauthCfg.Exchange(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), code)
	if err != nil {
		c.recordFailure("oauth_code_exchange", "exchange")
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, metadomain.NewUpstreamError(retrieveErr.Response.StatusCode, retrieveErr.Body)
		}
		return nil, fmt.Errorf("erro ao trocar código de autorização: %w", err)
	}
	c.recordCall("oauth_code_exchange", "200", time.Since(start))

	resp := &metadomain.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}
	if !token.Expiry.IsZero() {
		resp.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	return resp, nil
}

// GetLongLivedToken obtém um token de longa duração do Meta
// usando um token de curta (ou longa) duração
func (c *MetaClient) GetLongLivedToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.cfg.AppID)
	params.Add("client_secret", c.cfg.AppSecret)
	params.Add("fb_exchange_token", accessToken)

	body, err := c.get(ctx, "oauth_token_exchange", "oauth/access_token", params)
	if err != nil {
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("metaclient: long-lived token obtained, expires in %s", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// GetMe identifica o usuário dono do token; também serve para validar o token
func (c *MetaClient) GetMe(ctx context.Context, accessToken string) (*metadomain.User, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("token não pode ser vazio")
	}

	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", accessToken)

	body, err := c.get(ctx, "me", "me", params)
	if err != nil {
		return nil, err
	}

	var user metadomain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	return &user, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CalculateTokenExpiration calcula a data de expiração do token com base no tempo de expiração em segundos
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	// Subtraímos 1 dia para renovar antes da expiração real
	buffer := int64(24 * 60 * 60)
	safeExpiresIn := expiresIn - buffer

	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2 // Se for muito curto, usamos metade do tempo
	}

	return now.Add(time.Duration(safeExpiresIn) * time.Second)
}
