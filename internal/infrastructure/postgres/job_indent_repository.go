package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

var _ repository.JobIndentRepository = (*JobIndentRepo)(nil)

// JobIndentRepo implementación de JobIndentRepository sobre PostgreSQL:
// líneas de reserva como documentos jsonb en job_indents, con seq para el
// orden de inserción.
type JobIndentRepo struct {
	q Querier
}

// NewJobIndentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobIndentRepository(q Querier) *JobIndentRepo {
	return &JobIndentRepo{q: q}
}

func jobIndentDoc(line *entity.JobIndent) ([]byte, error) {
	doc := *line
	doc.ID = ""
	return marshalDoc(&doc)
}

// Create agrega una línea nueva al diario del trabajo.
func (r *JobIndentRepo) Create(ctx context.Context, line *entity.JobIndent) error {
	data, err := jobIndentDoc(line)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO job_indents (id, jobid, data) VALUES ($1, $2, $3)`,
		line.ID, line.JobID, data,
	)
	if err != nil {
		return domain.NewStorageError("insertar job_indent", err)
	}
	return nil
}

// ListByJob devuelve las líneas del trabajo en orden de inserción.
func (r *JobIndentRepo) ListByJob(ctx context.Context, jobID string) ([]*entity.JobIndent, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, data FROM job_indents WHERE jobid = $1 ORDER BY seq`, jobID)
	if err != nil {
		return nil, domain.NewStorageError("listar job_indents", err)
	}
	defer rows.Close()

	var list []*entity.JobIndent
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, domain.NewStorageError("escanear job_indent", err)
		}
		var line entity.JobIndent
		if err := scanDoc(data, &line); err != nil {
			return nil, err
		}
		line.ID = id
		list = append(list, &line)
	}
	return list, rows.Err()
}

// GetFirstMatch devuelve la primera línea (por orden de inserción) que
// coincide con (jobID, type, subtype) y bloquea su fila, o (nil, nil).
func (r *JobIndentRepo) GetFirstMatch(ctx context.Context, jobID, matType, subtype string) (*entity.JobIndent, error) {
	query := `
		SELECT id, data FROM job_indents
		WHERE jobid = $1 AND data->>'type' = $2 AND data->>'subtype' = $3
		ORDER BY seq LIMIT 1
		FOR UPDATE`
	var (
		id   string
		data []byte
	)
	err := r.q.QueryRow(ctx, query, jobID, matType, subtype).Scan(&id, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("buscar job_indent", err)
	}
	var line entity.JobIndent
	if err := scanDoc(data, &line); err != nil {
		return nil, err
	}
	line.ID = id
	return &line, nil
}

// Update reescribe el documento de la línea identificada por su ID.
func (r *JobIndentRepo) Update(ctx context.Context, line *entity.JobIndent) error {
	data, err := jobIndentDoc(line)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE job_indents SET data = $2 WHERE id = $1`,
		line.ID, data,
	)
	if err != nil {
		return domain.NewStorageError("actualizar job_indent", err)
	}
	return nil
}
