// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds surfaced by services. Handlers map them to HTTP status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// Postgres SQLSTATE codes translated by FromDB.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgInvalidText         = "22P02"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "validation failed", Fields: fields}
}

// NotFound builds an ErrNotFound carrying the entity name, e.g. "Brand not found".
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Invalid builds an ErrValidation with a client-facing message.
func Invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

// FromDB classifies a GORM/pgx error. Constraint violations become
// ErrConflict or ErrValidation with the database detail kept in the message;
// gorm.ErrRecordNotFound becomes ErrNotFound. Anything else is returned as is.
func FromDB(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%s already exists (%s): %w", entity, pgErr.ConstraintName, ErrConflict)
	case pgForeignKeyViolation:
		return fmt.Errorf("%s references a missing or still-referenced row (%s): %w", entity, pgErr.ConstraintName, ErrConflict)
	case pgNotNullViolation, pgCheckViolation, pgStringTooLong, pgInvalidText:
		return fmt.Errorf("%s: %s: %w", entity, pgErr.Message, ErrValidation)
	}
	return err
}

// IsClientError reports whether err should be surfaced to the caller as a 400.
func IsClientError(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrValidation)
}
