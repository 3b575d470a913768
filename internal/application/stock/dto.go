package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionInput identifica una posición de material y sus datos de entrada.
// Type y Subtype deben venir ya normalizados: la clave derivada se compara
// por igualdad exacta.
type PositionInput struct {
	Type        string
	Subtype     string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Invoice     string
	JobSpecific bool
	SerialNo    string
	CreatedBy   string
}

// IndentLineInput es una línea de reserva dentro de un lote de indents.
// JobID vacío toma el jobID del lote; si ambos faltan la línea se omite.
type IndentLineInput struct {
	JobID       string
	Type        string
	Subtype     string
	Quantity    decimal.Decimal
	JobSpecific bool
}

// SubmitReport resume el resultado de un lote de indents: las líneas omitidas
// por falta de jobid no son error (éxito parcial por diseño).
type SubmitReport struct {
	Submitted int
	Skipped   int
}

// FinalizeInput son los campos de emisión que se funden en la línea de indent
// localizada por (jobID, type, subtype).
type FinalizeInput struct {
	JobID       string
	Type        string
	Subtype     string
	JobSpecific bool
	Price       decimal.Decimal
	IssuedQty   decimal.Decimal
	IssuedValue decimal.Decimal
	IssuedBy    string
	IssuedAt    time.Time
}
