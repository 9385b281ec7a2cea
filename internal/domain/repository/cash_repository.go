package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// CashRepository define el puerto de persistencia para sesiones y
// movimientos de caja.
type CashRepository interface {
	ListSessions(ctx context.Context) ([]*entity.CashSession, error)
	// CurrentSession devuelve la sesión OPEN o nil si no hay ninguna.
	CurrentSession(ctx context.Context) (*entity.CashSession, error)
	// OpenSession cierra cualquier sesión OPEN colgada y abre la nueva.
	OpenSession(ctx context.Context, session *entity.CashSession) error
	CloseSession(ctx context.Context, id string, finalBalance decimal.Decimal) error

	ListMovements(ctx context.Context, sessionID string) ([]*entity.CashMovement, error)
	CreateMovement(ctx context.Context, movement *entity.CashMovement) error
}
