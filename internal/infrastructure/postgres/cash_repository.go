package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.CashRepository = (*CashRepo)(nil)

// CashRepo implementación de CashRepository (usable con pool o tx).
type CashRepo struct {
	q Querier
}

// NewCashRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

const sessionColumns = `id, opened_at, closed_at, initial_balance, final_balance, total_sales, operator_id, status`

// ListSessions devuelve las sesiones ordenadas por apertura descendente.
func (r *CashRepo) ListSessions(ctx context.Context) ([]*entity.CashSession, error) {
	rows, err := r.q.Query(ctx, `SELECT `+sessionColumns+` FROM cash_sessions ORDER BY opened_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cash sessions: %w", err)
	}
	defer rows.Close()

	var list []*entity.CashSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CurrentSession devuelve la sesión OPEN o nil si no hay ninguna.
func (r *CashRepo) CurrentSession(ctx context.Context) (*entity.CashSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM cash_sessions WHERE status = $1 LIMIT 1`,
		entity.CashSessionOpen,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("current cash session: %w", err)
	}
	return s, nil
}

// OpenSession cierra cualquier sesión OPEN colgada y abre la nueva.
func (r *CashRepo) OpenSession(ctx context.Context, s *entity.CashSession) error {
	_, err := r.q.Exec(ctx,
		`UPDATE cash_sessions SET status = $1, closed_at = CURRENT_TIMESTAMP WHERE status = $2`,
		entity.CashSessionClosed, entity.CashSessionOpen,
	)
	if err != nil {
		return fmt.Errorf("close dangling sessions: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO cash_sessions (id, opened_at, initial_balance, final_balance, total_sales, operator_id, status)
		VALUES ($1, $2, $3, 0, 0, $4, $5)`,
		s.ID, s.OpenedAt, s.InitialBalance, s.OperatorID, s.Status,
	)
	if err != nil {
		return fmt.Errorf("open cash session: %w", err)
	}
	return nil
}

// CloseSession cierra la sesión registrando el saldo contado.
func (r *CashRepo) CloseSession(ctx context.Context, id string, finalBalance decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		UPDATE cash_sessions
		SET status = $1, closed_at = CURRENT_TIMESTAMP, final_balance = $2
		WHERE id = $3`,
		entity.CashSessionClosed, finalBalance, id,
	)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	return nil
}

// ListMovements devuelve los movimientos de una sesión, más reciente primero.
func (r *CashRepo) ListMovements(ctx context.Context, sessionID string) ([]*entity.CashMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, session_id, type, amount, description, timestamp
		FROM cash_movements WHERE session_id = $1 ORDER BY timestamp DESC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		var description *string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Amount, &description, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		m.Description = derefStr(description)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CreateMovement inserta un movimiento manual.
func (r *CashRepo) CreateMovement(ctx context.Context, m *entity.CashMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cash_movements (id, session_id, type, amount, description, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.SessionID, m.Type, m.Amount, nullIfEmpty(m.Description), m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*entity.CashSession, error) {
	var s entity.CashSession
	var closedAt *time.Time
	var finalBalance *decimal.Decimal
	err := row.Scan(
		&s.ID, &s.OpenedAt, &closedAt, &s.InitialBalance, &finalBalance,
		&s.TotalSales, &s.OperatorID, &s.Status,
	)
	if err != nil {
		return nil, err
	}
	if closedAt != nil {
		s.ClosedAt = *closedAt
	}
	if finalBalance != nil {
		s.FinalBalance = *finalBalance
	}
	return &s, nil
}
