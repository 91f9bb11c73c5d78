package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrCompanyNotFound se devuelve cuando la empresa consultada no existe.
	// Envuelve ErrNotFound para que errors.Is(err, ErrNotFound) siga funcionando.
	ErrCompanyNotFound = fmt.Errorf("empresa: %w", ErrNotFound)
)
