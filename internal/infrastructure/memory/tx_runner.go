package memory

import (
	"context"

	"github.com/sethmayank01/gew-erp/internal/application/stock"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner simula la transacción del backend PostgreSQL: retiene el lock del
// almacén durante todo el callback, de modo que ningún lector ve estado
// intermedio (equivalente en memoria del bloqueo de fila), y ante error
// restaura el snapshot previo (rollback).
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// nopLocker es el locker de los repos atados a la tx: Run ya retiene s.mu,
// retomarla adentro sería deadlock.
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// Run ejecuta fn con repos atados al almacén, de a una transacción por vez.
func (r *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	indentRepo repository.IndentStockRepository,
	jobIndentRepo repository.JobIndentRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(
		&StockRepo{s: r.s, mu: nopLocker{}},
		&IndentStockRepo{s: r.s, mu: nopLocker{}},
		&JobIndentRepo{s: r.s, mu: nopLocker{}},
		&StockMovementRepo{s: r.s, mu: nopLocker{}},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
