package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los servicios devuelven estos sentinels (o los envuelven con fmt.Errorf("%w: ...")) y la capa HTTP
// los traduce a respuestas con errors.Is.
var (
	ErrUnauthenticated    = errors.New("sesión requerida")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrHasDependents      = errors.New("el recurso tiene dependientes")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
