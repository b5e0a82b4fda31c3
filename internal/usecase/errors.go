package usecase

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// NewMissingColumnsError sinaliza colunas obrigatórias ausentes na planilha:
// a execução inteira falha antes de processar qualquer linha.
func NewMissingColumnsError(missing []string) *DomainError {
	return &DomainError{
		Code:    "MISSING_COLUMNS",
		Message: fmt.Sprintf("colunas obrigatórias ausentes na planilha: %v", missing),
	}
}
