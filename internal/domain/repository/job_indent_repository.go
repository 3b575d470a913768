package repository

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/domain/entity"
)

// JobIndentRepository define el puerto sobre la tabla lógica job_indents:
// líneas individuales de reserva por trabajo, append al crear y un único
// update al finalizar.
type JobIndentRepository interface {
	Create(ctx context.Context, line *entity.JobIndent) error
	ListByJob(ctx context.Context, jobID string) ([]*entity.JobIndent, error)
	// GetFirstMatch devuelve la primera línea (por orden de inserción) que
	// coincide con (jobID, type, subtype), o (nil, nil) si no hay ninguna.
	GetFirstMatch(ctx context.Context, jobID, matType, subtype string) (*entity.JobIndent, error)
	// Update reescribe el documento de la línea identificada por su ID.
	Update(ctx context.Context, line *entity.JobIndent) error
}
