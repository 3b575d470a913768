package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de stock.
const (
	MovementIN  = "IN"
	MovementOUT = "OUT"
)

// StockMovement es el registro de auditoría de entradas y salidas físicas:
// cada AddStock escribe un IN y cada IssueStock un OUT en la misma
// transacción. Borrar una partida de stock no borra sus movimientos.
type StockMovement struct {
	ID        string          `json:"-"`
	Key       string          `json:"key"`
	Invoice   string          `json:"invoice,omitempty"`
	Direction string          `json:"direction"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedBy string          `json:"createdBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
