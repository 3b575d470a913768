package repository

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/domain/entity"
)

// IndentStockRepository define el puerto sobre la tabla lógica indent_stock:
// un agregado de reservas por clave de material, exactamente una fila por clave.
// Get* devuelven (nil, nil) cuando el agregado no existe.
type IndentStockRepository interface {
	Get(ctx context.Context, key string) (*entity.IndentStock, error)
	// GetForUpdate bloquea la fila del agregado (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, key string) (*entity.IndentStock, error)
	// Upsert crea el agregado si no existe o reescribe su total.
	Upsert(ctx context.Context, agg *entity.IndentStock) error
	List(ctx context.Context) ([]*entity.IndentStock, error)
}
