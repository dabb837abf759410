package domain

import (
	"time"
)

// Provedores de credenciais suportados
const (
	ProviderFacebook = "facebook"
	ProviderShopify  = "shopify"
)

// Account guarda a credencial de um usuário em um provedor externo
type Account struct {
	ID                string     `json:"id"`
	UserID            int        `json:"user_id"`
	Provider          string     `json:"provider"`
	ProviderAccountID string     `json:"provider_account_id"`
	AccessToken       string     `json:"-"`
	TokenExpiresAt    *time.Time `json:"token_expires_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// AdAccount é uma conta de anúncios acompanhada pelo usuário
type AdAccount struct {
	ID         string    `json:"id"`
	UserID     int       `json:"user_id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type TrackAdAccountRequest struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// Shop é uma loja Shopify conectada
type Shop struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConnectedShop é o formato que o dashboard espera na listagem de lojas
type ConnectedShop struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Shop ConnectedShopRef `json:"shop"`
}

type ConnectedShopRef struct {
	Name string `json:"name"`
}

type ConnectShopRequest struct {
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

type ConnectFacebookRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type ConnectFacebookResponse struct {
	ProviderAccountID string     `json:"provider_account_id"`
	TokenExpiresAt    *time.Time `json:"token_expires_at"`
}
