package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isForeignKeyViolation: se intenta borrar una fila referenciada (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// isUUID: las claves son UUID; cualquier otro valor no puede existir en la tabla.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// storeError traduce errores de constraint a errores de dominio conservando el mensaje del motor.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	msg := err.Error()
	if errors.As(err, &pgErr) {
		msg = pgErr.Message
		if pgErr.Detail != "" {
			msg += ": " + pgErr.Detail
		}
	}
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %s", op, domain.ErrDuplicate, msg)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, msg)
	case hasCode(err, codeInvalidText):
		return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
