package journey

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrShopNotConnected = errors.New("shop not connected")
)

// JourneyError é um erro com o código da API
type JourneyError struct {
	Err     error
	Code    string
	Details string
}

func (e *JourneyError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *JourneyError) Unwrap() error {
	return e.Err
}

func NewJourneyError(err error, code string, details string) *JourneyError {
	return &JourneyError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
