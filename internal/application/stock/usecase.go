package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/material"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

// StockUseCase implementa el libro de stock: alta, emisión, borrado, listado
// y guardado masivo, manteniendo el agregado de indents en sincronía.
// Las mutaciones corren bajo TxRunner con bloqueo de fila (SELECT FOR UPDATE)
// y Commit/Rollback; las lecturas usan los repos atados al pool.
type StockUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		movRepo:   movRepo,
	}
}

// clampZero aplica la política de no-negatividad: se clava en cero, no se rechaza.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// validatePosition chequea los campos que componen la clave.
func validatePosition(in PositionInput) error {
	if in.Type == "" {
		return domain.NewValidationError("type", "es requerido")
	}
	if in.Subtype == "" {
		return domain.NewValidationError("subtype", "es requerido")
	}
	return nil
}

// AddStock registra una partida nueva bajo la clave derivada de la posición y
// escribe el movimiento IN en la misma transacción. No chequea partidas
// existentes bajo (clave, factura): cada entrega física es su propia fila.
func (uc *StockUseCase) AddStock(ctx context.Context, in PositionInput) (string, error) {
	if err := validatePosition(in); err != nil {
		return "", err
	}

	key := material.DeriveKey(in.Type, in.Subtype, in.JobSpecific, in.SerialNo)
	entry := &entity.StockEntry{
		ID:             uuid.New().String(),
		Key:            key,
		Type:           in.Type,
		Subtype:        in.Subtype,
		Quantity:       clampZero(in.Quantity),
		Price:          in.Price,
		Invoice:        in.Invoice,
		JobSpecific:    in.JobSpecific,
		SerialNo:       in.SerialNo,
		IndentQuantity: decimal.Zero,
	}
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.IndentStockRepository,
		_ repository.JobIndentRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := stockRepo.Insert(ctx, entry); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			Key:       key,
			Invoice:   in.Invoice,
			Direction: entity.MovementIN,
			Quantity:  entry.Quantity,
			Price:     in.Price,
			CreatedBy: in.CreatedBy,
			CreatedAt: now,
		})
	})
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// IssueStock descuenta issueQty de la partida (clave, factura) y del agregado
// de indents de la misma clave, en UNA transacción y en ese orden. La clave se
// deriva una sola vez y se usa para ambos libros. El espejo indentQuantity de
// la partida se recalcula desde el agregado (fuente de verdad), nunca se
// decrementa por su cuenta.
func (uc *StockUseCase) IssueStock(ctx context.Context, in PositionInput, invoice string, issueQty decimal.Decimal) (*entity.StockEntry, error) {
	if err := validatePosition(in); err != nil {
		return nil, err
	}
	if invoice == "" {
		return nil, domain.NewValidationError("invoice", "es requerido")
	}
	if issueQty.IsNegative() {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}

	key := material.DeriveKey(in.Type, in.Subtype, in.JobSpecific, in.SerialNo)
	now := time.Now()

	var updated *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		indentRepo repository.IndentStockRepository,
		_ repository.JobIndentRepository,
		movRepo repository.StockMovementRepository,
	) error {
		entry, err := stockRepo.GetForUpdate(ctx, key, invoice)
		if err != nil {
			return err
		}
		if entry == nil {
			return &domain.NotFoundError{Resource: "stock", Key: key, Invoice: invoice}
		}

		// Descuento del agregado: ausencia no es error (emisión sin reserva previa).
		agg, err := indentRepo.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		mirror := decimal.Zero
		if agg != nil {
			agg.IndentQuantity = clampZero(agg.IndentQuantity.Sub(issueQty))
			mirror = agg.IndentQuantity
		}

		entry.Quantity = clampZero(entry.Quantity.Sub(issueQty))
		entry.IndentQuantity = mirror

		// Libro de stock primero, agregado después, movimiento al final.
		if err := stockRepo.Update(ctx, entry); err != nil {
			return err
		}
		if agg != nil {
			if err := indentRepo.Upsert(ctx, agg); err != nil {
				return err
			}
		}
		if err := movRepo.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			Key:       key,
			Invoice:   invoice,
			Direction: entity.MovementOUT,
			Quantity:  issueQty,
			Price:     entry.Price,
			CreatedBy: in.CreatedBy,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetStock devuelve la partida (clave, factura) sin bloquear su fila: lectura
// suelta sobre el pool, fuera de transacción.
func (uc *StockUseCase) GetStock(ctx context.Context, in PositionInput, invoice string) (*entity.StockEntry, error) {
	if err := validatePosition(in); err != nil {
		return nil, err
	}
	if invoice == "" {
		return nil, domain.NewValidationError("invoice", "es requerido")
	}

	key := material.DeriveKey(in.Type, in.Subtype, in.JobSpecific, in.SerialNo)
	entry, err := uc.stockRepo.Get(ctx, key, invoice)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, &domain.NotFoundError{Resource: "stock", Key: key, Invoice: invoice}
	}
	return entry, nil
}

// DeleteStock borra exactamente la partida (clave, factura). Nunca toca otras
// facturas de la misma clave ni el agregado de indents; los movimientos ya
// registrados quedan como auditoría.
func (uc *StockUseCase) DeleteStock(ctx context.Context, in PositionInput, invoice string) error {
	if err := validatePosition(in); err != nil {
		return err
	}
	if invoice == "" {
		return domain.NewValidationError("invoice", "es requerido")
	}

	key := material.DeriveKey(in.Type, in.Subtype, in.JobSpecific, in.SerialNo)
	deleted, err := uc.stockRepo.Delete(ctx, key, invoice)
	if err != nil {
		return err
	}
	if !deleted {
		return &domain.NotFoundError{Resource: "stock", Key: key, Invoice: invoice}
	}
	return nil
}

// ListStock devuelve las partidas cuyo número de serie (proxy de especificidad
// de trabajo) coincide con el filtro, cada una anotada con su clave.
func (uc *StockUseCase) ListStock(ctx context.Context, jobSpecific bool) ([]*entity.StockEntry, error) {
	entries, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]*entity.StockEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasSerial() == jobSpecific {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// BulkSave upserta partidas POR CLAVE (pisa la partida previa de cada clave).
// Es una política de escritura distinta de AddStock y se mantiene separada.
// Las posiciones sin type o subtype se omiten, igual que en el lote de indents.
func (uc *StockUseCase) BulkSave(ctx context.Context, positions []PositionInput, jobSpecific bool) error {
	if len(positions) == 0 {
		return domain.NewValidationError("stockData", "debe ser una lista no vacía")
	}

	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.IndentStockRepository,
		_ repository.JobIndentRepository,
		_ repository.StockMovementRepository,
	) error {
		for _, p := range positions {
			if p.Type == "" || p.Subtype == "" {
				continue
			}
			key := material.DeriveKey(p.Type, p.Subtype, jobSpecific, p.SerialNo)
			entry := &entity.StockEntry{
				ID:             uuid.New().String(),
				Key:            key,
				Type:           p.Type,
				Subtype:        p.Subtype,
				Quantity:       clampZero(p.Quantity),
				Price:          p.Price,
				Invoice:        p.Invoice,
				JobSpecific:    jobSpecific,
				SerialNo:       p.SerialNo,
				IndentQuantity: decimal.Zero,
			}
			if err := stockRepo.UpsertByKey(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListMovements devuelve el diario de entradas (IN) o salidas (OUT).
func (uc *StockUseCase) ListMovements(ctx context.Context, direction string) ([]*entity.StockMovement, error) {
	if direction != entity.MovementIN && direction != entity.MovementOUT {
		return nil, domain.NewValidationError("direction", "debe ser IN u OUT")
	}
	return uc.movRepo.ListByDirection(ctx, direction)
}
