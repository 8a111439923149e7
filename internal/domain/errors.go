package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrTenantNotFound     = errors.New("tenant no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrSlugAlreadyExists  = errors.New("el slug ya está en uso")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotOperator        = errors.New("operación reservada a operadores de facturación")
	ErrRequestNotPending  = errors.New("la solicitud de pago ya fue procesada")
	ErrUnknownModule      = errors.New("módulo desconocido")
	ErrTenantWithoutPlan  = errors.New("el tenant no tiene plan asignado")
)
