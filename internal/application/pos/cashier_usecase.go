package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// CashierUseCase sesiones de caja y movimientos manuales de efectivo.
// Contabilidad de saldo corriente simple, sin riesgos de concurrencia más
// allá de lo que da el storage.
type CashierUseCase struct {
	cashRepo repository.CashRepository
}

// NewCashierUseCase construye el caso de uso.
func NewCashierUseCase(cashRepo repository.CashRepository) *CashierUseCase {
	return &CashierUseCase{cashRepo: cashRepo}
}

// ListSessions lista las sesiones ordenadas por apertura descendente.
func (uc *CashierUseCase) ListSessions(ctx context.Context) ([]dto.CashSessionResponse, error) {
	sessions, err := uc.cashRepo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, *toSessionResponse(s))
	}
	return out, nil
}

// Current devuelve la sesión abierta o nil si la caja está cerrada.
func (uc *CashierUseCase) Current(ctx context.Context) (*dto.CashSessionResponse, error) {
	session, err := uc.cashRepo.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return toSessionResponse(session), nil
}

// Open abre un turno de caja para el operador. Cualquier sesión OPEN colgada
// se cierra primero (solo hay una caja).
func (uc *CashierUseCase) Open(ctx context.Context, operatorID string, in dto.OpenSessionRequest) (*dto.CashSessionResponse, error) {
	if in.InitialBalance.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	session := &entity.CashSession{
		ID:             in.ID,
		OpenedAt:       time.Now(),
		InitialBalance: in.InitialBalance,
		OperatorID:     operatorID,
		Status:         entity.CashSessionOpen,
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if err := uc.cashRepo.OpenSession(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Close cierra la sesión registrando el saldo contado.
func (uc *CashierUseCase) Close(ctx context.Context, operatorID string, in dto.CloseSessionRequest) error {
	if in.ID == "" {
		return domain.ErrInvalidInput
	}
	return uc.cashRepo.CloseSession(ctx, in.ID, in.FinalBalance)
}

// ListMovements lista los movimientos manuales de una sesión.
func (uc *CashierUseCase) ListMovements(ctx context.Context, sessionID string) ([]dto.CashMovementResponse, error) {
	movements, err := uc.cashRepo.ListMovements(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.CashMovementResponse{
			ID:          m.ID,
			SessionID:   m.SessionID,
			Type:        m.Type,
			Amount:      m.Amount,
			Description: m.Description,
			Timestamp:   m.Timestamp,
		})
	}
	return out, nil
}

// AddMovement registra una sangría o un refuerzo de efectivo.
func (uc *CashierUseCase) AddMovement(ctx context.Context, operatorID string, in dto.CashMovementRequest) error {
	if in.SessionID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementSangria && in.Type != entity.MovementReforco {
		return domain.ErrInvalidInput
	}
	// Solo se mueve efectivo contra la sesión abierta.
	current, err := uc.cashRepo.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if current == nil || current.ID != in.SessionID {
		return domain.ErrNoOpenCashSession
	}
	movement := &entity.CashMovement{
		ID:          in.ID,
		SessionID:   in.SessionID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Timestamp:   time.Now(),
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	return uc.cashRepo.CreateMovement(ctx, movement)
}

func toSessionResponse(s *entity.CashSession) *dto.CashSessionResponse {
	resp := &dto.CashSessionResponse{
		ID:             s.ID,
		OpenedAt:       s.OpenedAt,
		InitialBalance: s.InitialBalance,
		FinalBalance:   s.FinalBalance,
		TotalSales:     s.TotalSales,
		OperatorID:     s.OperatorID,
		Status:         s.Status,
	}
	if !s.ClosedAt.IsZero() {
		closedAt := s.ClosedAt
		resp.ClosedAt = &closedAt
	}
	return resp
}
