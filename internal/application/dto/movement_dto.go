package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	ItemID int64  `json:"item_id" form:"item_id"`
	Type   string `json:"type" form:"type"`     // entrada | salida
	Amount *int   `json:"amount" form:"amount"` // magnitud >= 0
}

// MovementResponse salida de un movimiento. Username es null para movimientos del sistema.
type MovementResponse struct {
	ID             int64     `json:"id"`
	ItemID         int64     `json:"item_id"`
	Type           string    `json:"type"`
	Amount         int       `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
	Username       *string   `json:"username"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
}

// ToMovementResponse mapea la entidad a su salida HTTP.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	var username *string
	if m.Username != "" {
		u := m.Username
		username = &u
	}
	return MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		Type:           m.Type,
		Amount:         m.Amount,
		Timestamp:      m.Timestamp,
		Username:       username,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
	}
}

// ToMovementList mapea una lista; nunca devuelve nil.
func ToMovementList(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
