package usecase

import (
	"errors"
	"fmt"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeNotConfirmed  = "NOT_CONFIRMED"
	CodeInvalidSource = "INVALID_SOURCE"
	CodeInvalidOrder  = "INVALID_ORDER"
	CodeStorage       = "STORAGE_ERROR"
	CodeMailDisabled  = "MAIL_NOT_CONFIGURED"
	CodeMailFailed    = "MAIL_FAILED"
	CodeInvalidFilter = "INVALID_FILTER"
)

// DomainError is a caller mistake; nothing was changed.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is an infrastructure failure (storage, mail).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode returns the code of a DomainError or TechnicalError, or "".
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func notFound(err error, id string) error {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s: %s", err.Error(), id),
		Err:     err,
	}
}

func notConfirmed(what string) error {
	return &DomainError{
		Code:    CodeNotConfirmed,
		Message: "operação cancelada: exclusão de " + what + " não confirmada",
	}
}

func storageError(err error) error {
	return &TechnicalError{
		Code:    CodeStorage,
		Message: "falha ao persistir estado: " + err.Error(),
		Err:     err,
	}
}
