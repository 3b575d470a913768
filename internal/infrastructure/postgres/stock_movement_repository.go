package postgres

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del diario de movimientos sobre PostgreSQL.
// Solo append y lectura; nada borra movimientos.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento IN u OUT.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	doc := *mov
	doc.ID = ""
	data, err := marshalDoc(&doc)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO stock_movements (id, direction, data) VALUES ($1, $2, $3)`,
		mov.ID, mov.Direction, data,
	)
	if err != nil {
		return domain.NewStorageError("insertar movimiento", err)
	}
	return nil
}

// ListByDirection devuelve los movimientos IN u OUT en orden de creación.
func (r *StockMovementRepo) ListByDirection(ctx context.Context, direction string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, data FROM stock_movements WHERE direction = $1 ORDER BY seq`, direction)
	if err != nil {
		return nil, domain.NewStorageError("listar movimientos", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, domain.NewStorageError("escanear movimiento", err)
		}
		var mov entity.StockMovement
		if err := scanDoc(data, &mov); err != nil {
			return nil, err
		}
		mov.ID = id
		list = append(list, &mov)
	}
	return list, rows.Err()
}
