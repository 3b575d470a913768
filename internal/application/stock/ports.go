package stock

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es el punto de serialización por clave del
// motor: toda mutación stock/indent corre adentro con bloqueo de fila.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		indentRepo repository.IndentStockRepository,
		jobIndentRepo repository.JobIndentRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
