package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de sesión de caja.
const (
	CashSessionOpen   = "OPEN"
	CashSessionClosed = "CLOSED"
)

// Tipos de movimiento manual de caja.
const (
	MovementSangria = "SANGRIA" // retiro de efectivo
	MovementReforco = "REFORCO" // ingreso de efectivo
)

// CashSession representa un turno de caja de un operador.
type CashSession struct {
	ID             string
	OpenedAt       time.Time
	ClosedAt       time.Time // cero mientras la sesión sigue abierta
	InitialBalance decimal.Decimal
	FinalBalance   decimal.Decimal
	TotalSales     decimal.Decimal
	OperatorID     string
	Status         string // OPEN | CLOSED
}

// CashMovement movimiento manual de efectivo dentro de una sesión.
type CashMovement struct {
	ID          string
	SessionID   string
	Type        string // SANGRIA | REFORCO
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
}
