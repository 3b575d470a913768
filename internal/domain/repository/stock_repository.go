package repository

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/domain/entity"
)

// StockRepository define el puerto sobre la tabla lógica stock.
// Las partidas se identifican por (key, invoice); Get* devuelven (nil, nil)
// cuando no hay fila, el caller decide si eso es error.
type StockRepository interface {
	// Insert persiste una partida nueva. No chequea duplicados por
	// (key, invoice): cada entrega física es su propia fila.
	Insert(ctx context.Context, entry *entity.StockEntry) error
	Get(ctx context.Context, key, invoice string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila para la lectura-modificación-escritura
	// de la emisión (SELECT FOR UPDATE en PostgreSQL).
	GetForUpdate(ctx context.Context, key, invoice string) (*entity.StockEntry, error)
	// Update reescribe el documento de la partida identificada por (key, invoice).
	Update(ctx context.Context, entry *entity.StockEntry) error
	// Delete borra exactamente la fila (key, invoice). Devuelve false si no existía.
	Delete(ctx context.Context, key, invoice string) (bool, error)
	// List devuelve todas las partidas anotadas con su clave, en orden de clave.
	List(ctx context.Context) ([]*entity.StockEntry, error)
	// UpsertByKey inserta o reemplaza POR CLAVE (política de escritura del
	// guardado masivo, distinta de Insert: pisa la partida previa de la clave).
	UpsertByKey(ctx context.Context, entry *entity.StockEntry) error
}
