package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/material"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

// IndentUseCase implementa el agregado de reservas por clave y el diario de
// líneas de indent por trabajo.
type IndentUseCase struct {
	txRunner      TxRunner
	indentRepo    repository.IndentStockRepository
	jobIndentRepo repository.JobIndentRepository
}

// NewIndentUseCase construye el caso de uso.
func NewIndentUseCase(
	txRunner TxRunner,
	indentRepo repository.IndentStockRepository,
	jobIndentRepo repository.JobIndentRepository,
) *IndentUseCase {
	return &IndentUseCase{
		txRunner:      txRunner,
		indentRepo:    indentRepo,
		jobIndentRepo: jobIndentRepo,
	}
}

// indentKey deriva la clave de una línea de indent. Para líneas específicas
// de trabajo el sufijo de serie es el propio jobid.
func indentKey(line IndentLineInput, jobID string) string {
	return material.DeriveKey(line.Type, line.Subtype, line.JobSpecific, jobID)
}

// SubmitIndents registra un lote de líneas de reserva. Cada línea incrementa
// el agregado de su clave y agrega una fila al diario del trabajo, en su
// propia transacción: un fallo a mitad del lote se reporta pero las líneas
// anteriores quedan confirmadas (éxito parcial por diseño). Las líneas sin
// jobid se omiten sin error.
func (uc *IndentUseCase) SubmitIndents(ctx context.Context, jobID string, lines []IndentLineInput) (*SubmitReport, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("data", "se espera una lista de indents")
	}

	report := &SubmitReport{}
	for i, line := range lines {
		jid := line.JobID
		if jid == "" {
			jid = jobID
		}
		if jid == "" {
			report.Skipped++
			continue
		}

		key := indentKey(line, jid)
		jobLine := &entity.JobIndent{
			ID:          uuid.New().String(),
			JobID:       jid,
			Type:        line.Type,
			Subtype:     line.Subtype,
			Quantity:    line.Quantity,
			JobSpecific: line.JobSpecific,
		}

		err := uc.txRunner.Run(ctx, func(
			_ repository.StockRepository,
			indentRepo repository.IndentStockRepository,
			jobIndentRepo repository.JobIndentRepository,
			_ repository.StockMovementRepository,
		) error {
			agg, err := indentRepo.GetForUpdate(ctx, key)
			if err != nil {
				return err
			}
			if agg == nil {
				agg = &entity.IndentStock{Key: key, IndentQuantity: line.Quantity}
			} else {
				agg.IndentQuantity = agg.IndentQuantity.Add(line.Quantity)
			}
			if err := indentRepo.Upsert(ctx, agg); err != nil {
				return err
			}
			return jobIndentRepo.Create(ctx, jobLine)
		})
		if err != nil {
			return report, fmt.Errorf("línea %d del lote: %w", i, err)
		}
		report.Submitted++
	}
	return report, nil
}

// GetIndentsForJob devuelve todas las líneas de indent del trabajo, en orden
// de inserción.
func (uc *IndentUseCase) GetIndentsForJob(ctx context.Context, jobID string) ([]*entity.JobIndent, error) {
	if jobID == "" {
		return nil, domain.NewValidationError("serialNo", "es requerido")
	}
	return uc.jobIndentRepo.ListByJob(ctx, jobID)
}

// FinalizeIndentLine funde el resultado de la emisión en la línea localizada
// por (jobID, type, subtype). Si varias líneas del trabajo comparten
// type+subtype se toma la PRIMERA por orden de inserción; el caller puede
// desambiguar consultando GetIndentsForJob antes de finalizar.
func (uc *IndentUseCase) FinalizeIndentLine(ctx context.Context, in FinalizeInput) error {
	if in.JobID == "" {
		return domain.NewValidationError("serialNo", "es requerido")
	}
	if in.Type == "" || in.Subtype == "" {
		return domain.NewValidationError("type/subtype", "son requeridos")
	}

	return uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.IndentStockRepository,
		jobIndentRepo repository.JobIndentRepository,
		_ repository.StockMovementRepository,
	) error {
		line, err := jobIndentRepo.GetFirstMatch(ctx, in.JobID, in.Type, in.Subtype)
		if err != nil {
			return err
		}
		if line == nil {
			return &domain.NotFoundError{
				Resource: "job_indents",
				Key:      fmt.Sprintf("%s/%s/%s", in.JobID, in.Type, in.Subtype),
			}
		}

		price := in.Price
		issuedQty := in.IssuedQty
		issuedValue := in.IssuedValue
		issuedAt := in.IssuedAt

		line.Price = &price
		line.IssuedQty = &issuedQty
		line.IssuedValue = &issuedValue
		line.JobSpecific = in.JobSpecific
		line.IssuedBy = in.IssuedBy
		line.IssuedAt = &issuedAt
		return jobIndentRepo.Update(ctx, line)
	})
}

// GetIndentAggregate devuelve el agregado de reservas de la clave, sin
// bloquear su fila (lectura suelta).
func (uc *IndentUseCase) GetIndentAggregate(ctx context.Context, key string) (*entity.IndentStock, error) {
	if key == "" {
		return nil, domain.NewValidationError("key", "es requerida")
	}
	agg, err := uc.indentRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, &domain.NotFoundError{Resource: "indent_stock", Key: key}
	}
	return agg, nil
}

// ListIndentAggregates devuelve el agregado de reservas de todas las claves.
func (uc *IndentUseCase) ListIndentAggregates(ctx context.Context) ([]*entity.IndentStock, error) {
	return uc.indentRepo.List(ctx)
}
