package account

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de contas
var (
	// Erros de validação
	ErrInvalidInput        = errors.New("invalid input")
	ErrAdAccountDuplicated = errors.New("ad account already tracked")
	ErrShopDuplicated      = errors.New("shop already connected")

	// Erros de serviços externos
	ErrShopifyConnection = errors.New("error connecting to Shopify")
	ErrMetaIntegration   = errors.New("error connecting to Meta")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// AccountError é um erro com contexto adicional para contas
type AccountError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	Cause   error  // Erro original, quando veio de um serviço externo
}

// Error implementa a interface error
func (e *AccountError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap permite errors.Is/As tanto no erro base quanto na causa
func (e *AccountError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewAccountError cria um novo AccountError
func NewAccountError(err error, code string, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
