package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL: documentos
// jsonb en la tabla stock, identificados por (key, data->>'invoice').
// Usable con pool o tx (Querier).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// stockDoc arma el documento a persistir: id y key viven en sus columnas,
// no se duplican dentro de data.
func stockDoc(entry *entity.StockEntry) ([]byte, error) {
	doc := *entry
	doc.ID = ""
	doc.Key = ""
	return marshalDoc(&doc)
}

// Insert persiste una partida nueva. Duplicados por (key, invoice) permitidos.
func (r *StockRepo) Insert(ctx context.Context, entry *entity.StockEntry) error {
	data, err := stockDoc(entry)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO stock (id, key, data) VALUES ($1, $2, $3)`,
		entry.ID, entry.Key, data,
	)
	if err != nil {
		return domain.NewStorageError("insertar stock", err)
	}
	return nil
}

// Get obtiene la partida (key, invoice), o (nil, nil) si no existe.
func (r *StockRepo) Get(ctx context.Context, key, invoice string) (*entity.StockEntry, error) {
	return r.get(ctx, key, invoice, false)
}

// GetForUpdate obtiene la partida y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, key, invoice string) (*entity.StockEntry, error) {
	return r.get(ctx, key, invoice, true)
}

func (r *StockRepo) get(ctx context.Context, key, invoice string, forUpdate bool) (*entity.StockEntry, error) {
	query := `
		SELECT id, key, data FROM stock
		WHERE key = $1 AND data->>'invoice' = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var (
		id, k string
		data  []byte
	)
	err := r.q.QueryRow(ctx, query, key, invoice).Scan(&id, &k, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("obtener stock", err)
	}
	var entry entity.StockEntry
	if err := scanDoc(data, &entry); err != nil {
		return nil, err
	}
	entry.ID = id
	entry.Key = k
	return &entry, nil
}

// Update reescribe el documento de la partida (key, invoice).
func (r *StockRepo) Update(ctx context.Context, entry *entity.StockEntry) error {
	data, err := stockDoc(entry)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE stock SET data = $3 WHERE key = $1 AND data->>'invoice' = $2`,
		entry.Key, entry.Invoice, data,
	)
	if err != nil {
		return domain.NewStorageError("actualizar stock", err)
	}
	return nil
}

// Delete borra exactamente la fila (key, invoice). Devuelve false si no existía.
func (r *StockRepo) Delete(ctx context.Context, key, invoice string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM stock WHERE key = $1 AND data->>'invoice' = $2`,
		key, invoice,
	)
	if err != nil {
		return false, domain.NewStorageError("borrar stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List devuelve todas las partidas en orden de clave, anotadas con su clave.
func (r *StockRepo) List(ctx context.Context) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, key, data FROM stock ORDER BY key`)
	if err != nil {
		return nil, domain.NewStorageError("listar stock", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		var (
			id, key string
			data    []byte
		)
		if err := rows.Scan(&id, &key, &data); err != nil {
			return nil, domain.NewStorageError("escanear stock", err)
		}
		var entry entity.StockEntry
		if err := scanDoc(data, &entry); err != nil {
			return nil, err
		}
		entry.ID = id
		entry.Key = key
		list = append(list, &entry)
	}
	return list, rows.Err()
}

// UpsertByKey reemplaza la partida de la clave (política del guardado masivo):
// borra lo que hubiera bajo la clave e inserta el documento nuevo. Correr
// dentro de una transacción.
func (r *StockRepo) UpsertByKey(ctx context.Context, entry *entity.StockEntry) error {
	data, err := stockDoc(entry)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock WHERE key = $1`, entry.Key); err != nil {
		return domain.NewStorageError("upsert stock (delete)", err)
	}
	if _, err := r.q.Exec(ctx,
		`INSERT INTO stock (id, key, data) VALUES ($1, $2, $3)`,
		entry.ID, entry.Key, data,
	); err != nil {
		return domain.NewStorageError("upsert stock (insert)", err)
	}
	return nil
}
