package errors

import (
	"errors"
	"net/http"
)

// Error representa um erro de domínio com status HTTP e contexto adicional.
// Erros de cliente (4xx) carregam mensagens seguras para o chamador; qualquer
// outro erro é tratado como interno pelo error handler central.
type Error struct {
	Status   int
	Message  string
	Resource string
	Details  any
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Name retorna o nome do erro no formato usado nos registros de ErrorLog
// (ex: "BadRequestError")
func (e *Error) Name() string {
	switch e.Status {
	case http.StatusBadRequest:
		return "BadRequestError"
	case http.StatusUnauthorized:
		return "UnauthorizedError"
	case http.StatusForbidden:
		return "ForbiddenError"
	case http.StatusNotFound:
		return "NotFoundError"
	case http.StatusConflict:
		return "ConflictError"
	default:
		return "InternalServerError"
	}
}

// New cria um erro de domínio com status arbitrário
func New(status int, message, resource string) *Error {
	return &Error{Status: status, Message: message, Resource: resource}
}

// BadRequest cria um erro 400
func BadRequest(message, resource string) *Error {
	return New(http.StatusBadRequest, message, resource)
}

// Unauthorized cria um erro 401
func Unauthorized(message, resource string) *Error {
	return New(http.StatusUnauthorized, message, resource)
}

// Forbidden cria um erro 403
func Forbidden(message, resource string) *Error {
	return New(http.StatusForbidden, message, resource)
}

// NotFound cria um erro 404
func NotFound(message, resource string) *Error {
	return New(http.StatusNotFound, message, resource)
}

// Conflict cria um erro 409
func Conflict(message, resource string) *Error {
	return New(http.StatusConflict, message, resource)
}

// Internal encapsula uma falha inesperada (banco, rede) com mensagem uniforme
func Internal(message, resource string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Resource: resource, Err: err}
}

// AsError extrai um *Error da cadeia de erros, se houver
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf retorna o status HTTP do erro (500 para erros não tipados)
func StatusOf(err error) int {
	if e, ok := AsError(err); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}

// IsClient informa se o erro é um erro de cliente (4xx)
func IsClient(err error) bool {
	s := StatusOf(err)
	return s >= 400 && s < 500
}
