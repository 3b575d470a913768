package entity

import "github.com/shopspring/decimal"

// IndentStock es el agregado de reservas pendientes por clave de material:
// exactamente una fila por clave (semántica upsert, sin partición por factura).
// IndentQuantity nunca baja de cero; se clava en cero, no se rechaza.
type IndentStock struct {
	Key            string          `json:"key,omitempty"`
	IndentQuantity decimal.Decimal `json:"indentQuantity"`
}
