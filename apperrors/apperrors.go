package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidState       Code = "INVALID_STATE"
	CodeConflict           Code = "CONFLICT"
	CodeGatewayError       Code = "GATEWAY_ERROR"
	CodeConfigurationError Code = "CONFIGURATION_ERROR"
	CodeInternal           Code = "INTERNAL"
)

// AppError erreur applicative typée, portée jusqu'au handler qui la
// traduit en réponse HTTP
type AppError struct {
	Code     Code   `json:"code"`
	Message  string `json:"message"`
	HTTPCode int    `json:"-"`
	Err      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is permet errors.Is entre deux AppError sur la base du code
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode, Err: err}
}

// Constructeurs pour la taxonomie du projet

func Unauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func InvalidState(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func Gateway(err error, message string) *AppError {
	return Wrap(err, CodeGatewayError, message, http.StatusBadGateway)
}

func Configuration(message string) *AppError {
	return New(CodeConfigurationError, message, http.StatusInternalServerError)
}

func Internal(err error, message string) *AppError {
	return Wrap(err, CodeInternal, message, http.StatusInternalServerError)
}

// CodeOf retourne le code applicatif d'une erreur, ou CodeInternal si
// l'erreur n'est pas typée
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus retourne le statut HTTP à renvoyer pour une erreur
func HTTPStatus(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}
