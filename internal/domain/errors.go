package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrMissingSelection: falta alguna selección obligatoria para generar la factura.
	ErrMissingSelection = errors.New("faltan datos obligatorios para generar la factura")
	// ErrDocumentGeneration es el único error que ve el usuario cuando falla el PDF.
	ErrDocumentGeneration = errors.New("no se pudo generar el documento")
	// ErrUpstream: el servicio externo (presupuestos, almacenamiento) respondió con error.
	ErrUpstream = errors.New("error en servicio externo")
)
