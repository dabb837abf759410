package metadomain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// UpstreamError é uma resposta de erro da Graph API, repassada ao chamador sem retry
type UpstreamError struct {
	StatusCode   int    `json:"status_code"`
	Message      string `json:"message"`
	Type         string `json:"type,omitempty"`
	Code         int    `json:"code,omitempty"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id,omitempty"`
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("meta api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("meta api error (status %d): %s", e.StatusCode, e.Message)
}

// TokenExpired indica que o usuário precisa reconectar a conta do Facebook
func (e *UpstreamError) TokenExpired() bool {
	resp := ErrorResponse{Error: ErrorDetails{Type: e.Type, Code: e.Code, ErrorSubcode: e.ErrorSubcode}}
	return resp.IsTokenExpired()
}

// NewUpstreamError monta o erro a partir do corpo retornado pela API. Corpos
// fora do formato padrão viram a mensagem do erro.
func NewUpstreamError(statusCode int, body []byte) *UpstreamError {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &UpstreamError{
			StatusCode:   statusCode,
			Message:      errResp.Error.Message,
			Type:         errResp.Error.Type,
			Code:         errResp.Error.Code,
			ErrorSubcode: errResp.Error.ErrorSubcode,
			FBTraceID:    errResp.Error.FBTraceID,
		}
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", statusCode)
	}
	return &UpstreamError{StatusCode: statusCode, Message: message}
}
