// Package apperr holds the error taxonomy shared by services, handlers and the
// REST client, and the translation of those errors into HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Kind int

const (
	Internal Kind = iota
	Network
	Authorization
	Validation
	NotFound
	Conflict
	ExternalService
	InvalidResponseFormat
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "NetworkError"
	case Authorization:
		return "AuthorizationError"
	case Validation:
		return "ValidationError"
	case NotFound:
		return "NotFoundError"
	case Conflict:
		return "ConflictError"
	case ExternalService:
		return "ExternalServiceError"
	case InvalidResponseFormat:
		return "InvalidResponseFormat"
	default:
		return "InternalError"
	}
}

// Error is a classified failure. Message is safe to show to end users;
// Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is checks.
var (
	ErrNetwork               = &Error{Kind: Network}
	ErrAuthorization         = &Error{Kind: Authorization}
	ErrValidation            = &Error{Kind: Validation}
	ErrNotFound              = &Error{Kind: NotFound}
	ErrConflict              = &Error{Kind: Conflict}
	ErrExternalService       = &Error{Kind: ExternalService}
	ErrInvalidResponseFormat = &Error{Kind: InvalidResponseFormat}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of the first *Error in err's chain, Internal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case ExternalService, InvalidResponseFormat:
		return http.StatusBadGateway
	case Network:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var defaultMessages = map[Kind]string{
	Internal:              "Erro interno. Por favor, tente novamente.",
	Network:               "Não foi possível conectar ao servidor. Verifique sua conexão.",
	Authorization:         "Você não tem permissão para realizar esta operação.",
	Validation:            "Dados inválidos. Por favor, verifique as informações.",
	NotFound:              "Registro não encontrado.",
	Conflict:              "O registro já existe.",
	ExternalService:       "O assistente está indisponível no momento. Tente novamente.",
	InvalidResponseFormat: "Resposta inválida do assistente. Tente reformular o pedido.",
}

// UserMessage returns the localized message for err.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" && e.Kind != Internal {
		return e.Message
	}
	return defaultMessages[KindOf(err)]
}

// Respond writes err as a JSON body. Internal causes are logged, never echoed.
func Respond(c *gin.Context, logger *zap.Logger, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)

	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	}

	body := gin.H{
		"error":   kind.String(),
		"message": UserMessage(err),
	}
	var e *Error
	if errors.As(err, &e) && len(e.Fields) > 0 {
		body["errors"] = e.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
