package repository

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/domain/entity"
)

// StockMovementRepository define el puerto del diario de movimientos
// (entradas y salidas físicas de material). Solo append y lectura.
type StockMovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error
	// ListByDirection devuelve los movimientos IN u OUT en orden de creación.
	ListByDirection(ctx context.Context, direction string) ([]*entity.StockMovement, error)
}
