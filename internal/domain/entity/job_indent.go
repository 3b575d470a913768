package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobIndent es una línea individual de reserva contra un trabajo.
// Se crea al registrar el lote de indents y se completa una única vez con el
// resultado de la emisión (Finalize). El jobid viaja en el documento como
// serialNo, igual que en el resto del sistema.
type JobIndent struct {
	ID          string          `json:"-"`
	JobID       string          `json:"serialNo"`
	Type        string          `json:"type"`
	Subtype     string          `json:"subtype"`
	Quantity    decimal.Decimal `json:"quantity"`
	JobSpecific bool            `json:"jobSpecific"`

	// Resultado de la emisión; nil/vacío hasta que se finaliza la línea.
	Price       *decimal.Decimal `json:"price,omitempty"`
	IssuedQty   *decimal.Decimal `json:"issuedQty,omitempty"`
	IssuedValue *decimal.Decimal `json:"issuedValue,omitempty"`
	IssuedBy    string           `json:"user_out,omitempty"`
	IssuedAt    *time.Time       `json:"out_time,omitempty"`
}
