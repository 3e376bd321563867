package utils

import (
	"fmt"
	"net/http"
	"regexp"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindSchema
)

// AppError is an error with a user-facing message and an HTTP mapping.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// ErrLoginRequired is returned by write paths called without a company identity.
var ErrLoginRequired = NewUnauthorizedError("로그인 필요")

var missingColumnPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no such column:\s*(?:\w+\.)?"?(\w+)"?`),
	regexp.MustCompile(`(?i)unknown column '(?:\w+\.)?(\w+)'`),
	regexp.MustCompile(`(?i)column "?(?:\w+\.)?(\w+)"? (?:of relation "?\w+"? )?does not exist`),
	regexp.MustCompile(`(?i)table \w+ has no column named (\w+)`),
}

// MissingColumn reports the column named by a "column does not exist" style
// storage error from sqlite, MySQL or Postgres.
func MissingColumn(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	for _, re := range missingColumnPatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// StorageError wraps a database error. Missing-column errors become
// KindSchema with a hint naming the migrate command.
func StorageError(err error) *AppError {
	if column, ok := MissingColumn(err); ok {
		return &AppError{
			Kind:    KindSchema,
			Message: fmt.Sprintf("DB에 %s 컬럼이 없습니다. 'interior-consult migrate' 를 실행해 주세요.", column),
			Err:     err,
		}
	}
	return &AppError{Kind: KindInternal, Message: internalErrorMessage, Err: err}
}
