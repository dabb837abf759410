package metadomain

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// User é o retorno de /me, usado para identificar a conta conectada
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
