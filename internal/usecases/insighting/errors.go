package insighting

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput é retornado antes de qualquer chamada externa
	ErrInvalidInput = errors.New("invalid input")
	// ErrPartialEnrichment indica que algum thumbnail de criativo não pôde ser obtido
	ErrPartialEnrichment = errors.New("failed to enrich insights with creative thumbnails")
	// ErrCredentialNotFound indica que o usuário não conectou o Facebook
	ErrCredentialNotFound = errors.New("facebook account not connected")
	// ErrAdAccountNotTracked indica que a conta de anúncios não pertence ao usuário
	ErrAdAccountNotTracked = errors.New("ad account not tracked by user")
)

// InsightError carrega o código da API e, quando houver, a causa externa
type InsightError struct {
	Err     error
	Code    string
	Details string
	Cause   error
}

func (e *InsightError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap expõe tanto o erro base quanto a causa para errors.Is/As
func (e *InsightError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NewInsightError(err error, code string, details string) *InsightError {
	return &InsightError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
