package entity

import "github.com/shopspring/decimal"

// StockEntry representa una partida física de stock bajo una clave de material
// y una factura de entrega. Varias partidas pueden compartir clave si entraron
// con facturas distintas; el par (key, invoice) identifica la fila.
// Los tags JSON reproducen el documento almacenado en la columna data.
type StockEntry struct {
	ID             string          `json:"-"`
	Key            string          `json:"key,omitempty"`
	Type           string          `json:"type"`
	Subtype        string          `json:"subtype"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Invoice        string          `json:"invoice"`
	JobSpecific    bool            `json:"jobSpecific"`
	SerialNo       string          `json:"serialNo,omitempty"`
	IndentQuantity decimal.Decimal `json:"indentQuantity"`
}

// HasSerial indica si la partida trae número de serie. Es el proxy de
// especificidad de trabajo que usa el listado de stock.
func (e *StockEntry) HasSerial() bool { return e.SerialNo != "" }
