package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("no tienes permisos para realizar esta acción")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("cantidad supera lo disponible")

	// Inventario
	ErrInvalidTransition = errors.New("transición de inventario no permitida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")

	// Proyectos y miembros
	ErrNotMember      = errors.New("no eres miembro de este proyecto")
	ErrOwnerImmutable = errors.New("el propietario del proyecto no se puede modificar")
	ErrInviteExpired  = errors.New("el código de invitación expiró o ya no es válido")
)
