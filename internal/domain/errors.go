package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrOutOfStock          = errors.New("activo sin unidades disponibles")
	ErrPackageLimitReached = errors.New("límite del paquete alcanzado, actualice su plan")
	ErrPaymentNotCompleted = errors.New("el pago de la sesión no está completado")
)
