package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidState     = errors.New("operación no permitida en el estado actual")
	ErrAlreadyConverted = errors.New("el caso ya fue convertido en orden de servicio")
	ErrDuplicate        = errors.New("recurso duplicado")
)
