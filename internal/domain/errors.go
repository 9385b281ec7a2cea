package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrAgreementNotFound    = errors.New("convenio no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidState         = errors.New("estado inválido para la operación")
	ErrNoPendingConsumption = errors.New("sin consumos pendientes en el período")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrNoOpenCashSession    = errors.New("no hay sesión de caja abierta")
)
