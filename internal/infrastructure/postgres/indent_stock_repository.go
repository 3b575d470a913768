package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

var _ repository.IndentStockRepository = (*IndentStockRepo)(nil)

// IndentStockRepo implementación de IndentStockRepository sobre PostgreSQL:
// una fila por clave en indent_stock, documento jsonb con el total.
type IndentStockRepo struct {
	q Querier
}

// NewIndentStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIndentStockRepository(q Querier) *IndentStockRepo {
	return &IndentStockRepo{q: q}
}

func indentDoc(agg *entity.IndentStock) ([]byte, error) {
	doc := *agg
	doc.Key = ""
	return marshalDoc(&doc)
}

// Get obtiene el agregado de la clave, o (nil, nil) si no existe.
func (r *IndentStockRepo) Get(ctx context.Context, key string) (*entity.IndentStock, error) {
	return r.get(ctx, key, false)
}

// GetForUpdate obtiene el agregado y bloquea la fila (SELECT FOR UPDATE).
func (r *IndentStockRepo) GetForUpdate(ctx context.Context, key string) (*entity.IndentStock, error) {
	return r.get(ctx, key, true)
}

func (r *IndentStockRepo) get(ctx context.Context, key string, forUpdate bool) (*entity.IndentStock, error) {
	query := `SELECT data FROM indent_stock WHERE key = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var data []byte
	err := r.q.QueryRow(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("obtener indent_stock", err)
	}
	var agg entity.IndentStock
	if err := scanDoc(data, &agg); err != nil {
		return nil, err
	}
	agg.Key = key
	return &agg, nil
}

// Upsert crea el agregado de la clave o reescribe su total.
func (r *IndentStockRepo) Upsert(ctx context.Context, agg *entity.IndentStock) error {
	data, err := indentDoc(agg)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO indent_stock (key, data) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data`,
		agg.Key, data,
	)
	if err != nil {
		return domain.NewStorageError("upsert indent_stock", err)
	}
	return nil
}

// List devuelve todos los agregados en orden de clave.
func (r *IndentStockRepo) List(ctx context.Context) ([]*entity.IndentStock, error) {
	rows, err := r.q.Query(ctx,
		`SELECT key, data FROM indent_stock ORDER BY key`)
	if err != nil {
		return nil, domain.NewStorageError("listar indent_stock", err)
	}
	defer rows.Close()

	var list []*entity.IndentStock
	for rows.Next() {
		var (
			key  string
			data []byte
		)
		if err := rows.Scan(&key, &data); err != nil {
			return nil, domain.NewStorageError("escanear indent_stock", err)
		}
		var agg entity.IndentStock
		if err := scanDoc(data, &agg); err != nil {
			return nil, err
		}
		agg.Key = key
		list = append(list, &agg)
	}
	return list, rows.Err()
}
