package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kind is the machine-distinguishable class of a domain error. Every error
// the use cases return carries one, plus a stable code and a human message.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindAuth
	KindForbidden
	KindInternal
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Code
}

func Validation(code, message string) error {
	return &BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return &BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ConflictErr(code, message string) error {
	return &BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func AuthErr(code, message string) error {
	return &BusinessError{Kind: KindAuth, Code: code, Message: message}
}

func ForbiddenErr(code, message string) error {
	return &BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Kind == kind
}

func IsCode(err error, code string) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == code
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The schedules slot index raises this when two
// requests race past the application-level conflict pre-check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Respond translates a use-case error into an HTTP response. Internal causes
// are logged server-side and never leak to the client.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be *BusinessError
	if errors.As(err, &be) {
		Write(c, statusFor(be.Kind), be.Code, be.Message)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "not_found", "Recurso não encontrado.")
		return
	}

	if log != nil {
		log.Error("unhandled error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Internal(c, "internal_error", "Erro interno.")
}
