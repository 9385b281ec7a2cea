package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenSessionRequest body para POST /api/cashier/open.
type OpenSessionRequest struct {
	ID             string          `json:"id,omitempty"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// CloseSessionRequest body para POST /api/cashier/close.
type CloseSessionRequest struct {
	ID           string          `json:"id"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
}

// CashSessionResponse sesión de caja en respuestas.
type CashSessionResponse struct {
	ID             string          `json:"id"`
	OpenedAt       time.Time       `json:"openedAt"`
	ClosedAt       *time.Time      `json:"closedAt,omitempty"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	OperatorID     string          `json:"operatorId"`
	Status         string          `json:"status"` // OPEN | CLOSED
}

// CashMovementRequest body para POST /api/cashier/movements.
type CashMovementRequest struct {
	ID          string          `json:"id,omitempty"`
	SessionID   string          `json:"sessionId"`
	Type        string          `json:"type"` // SANGRIA | REFORCO
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// CashMovementResponse movimiento de caja en respuestas.
type CashMovementResponse struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"sessionId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}
