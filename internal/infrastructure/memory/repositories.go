package memory

import (
	"context"
	"sync"

	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/domain/repository"
)

var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.IndentStockRepository   = (*IndentStockRepo)(nil)
	_ repository.JobIndentRepository     = (*JobIndentRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockRepo adaptador en memoria de StockRepository. Devuelve copias para
// evitar aliasing con el estado interno del almacén. mu es el lock del
// almacén para repos sueltos, o un no-op cuando el TxRunner ya lo retiene.
type StockRepo struct {
	s  *Store
	mu sync.Locker
}

// NewStockRepository construye el adaptador sobre el almacén.
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s, mu: &s.mu} }

func (r *StockRepo) Insert(_ context.Context, entry *entity.StockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.insertStock(*entry)
	return nil
}

func (r *StockRepo) Get(ctx context.Context, key, invoice string) (*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.getStock(key, invoice), nil
}

// GetForUpdate equivale a Get: en memoria la serialización la da el TxRunner.
func (r *StockRepo) GetForUpdate(ctx context.Context, key, invoice string) (*entity.StockEntry, error) {
	return r.Get(ctx, key, invoice)
}

func (r *StockRepo) Update(_ context.Context, entry *entity.StockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.updateStock(*entry)
	return nil
}

func (r *StockRepo) Delete(_ context.Context, key, invoice string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.deleteStock(key, invoice), nil
}

func (r *StockRepo) List(_ context.Context) ([]*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.listStock(), nil
}

func (r *StockRepo) UpsertByKey(_ context.Context, entry *entity.StockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.upsertStockByKey(*entry)
	return nil
}

// IndentStockRepo adaptador en memoria de IndentStockRepository.
type IndentStockRepo struct {
	s  *Store
	mu sync.Locker
}

// NewIndentStockRepository construye el adaptador sobre el almacén.
func NewIndentStockRepository(s *Store) *IndentStockRepo {
	return &IndentStockRepo{s: s, mu: &s.mu}
}

func (r *IndentStockRepo) Get(ctx context.Context, key string) (*entity.IndentStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.getIndent(key), nil
}

func (r *IndentStockRepo) GetForUpdate(ctx context.Context, key string) (*entity.IndentStock, error) {
	return r.Get(ctx, key)
}

func (r *IndentStockRepo) Upsert(_ context.Context, agg *entity.IndentStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.upsertIndent(*agg)
	return nil
}

func (r *IndentStockRepo) List(_ context.Context) ([]*entity.IndentStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.listIndents(), nil
}

// JobIndentRepo adaptador en memoria de JobIndentRepository.
type JobIndentRepo struct {
	s  *Store
	mu sync.Locker
}

// NewJobIndentRepository construye el adaptador sobre el almacén.
func NewJobIndentRepository(s *Store) *JobIndentRepo {
	return &JobIndentRepo{s: s, mu: &s.mu}
}

func (r *JobIndentRepo) Create(_ context.Context, line *entity.JobIndent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.createJobIndent(*line)
	return nil
}

func (r *JobIndentRepo) ListByJob(_ context.Context, jobID string) ([]*entity.JobIndent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.listJobIndents(jobID), nil
}

func (r *JobIndentRepo) GetFirstMatch(_ context.Context, jobID, matType, subtype string) (*entity.JobIndent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.firstJobIndentMatch(jobID, matType, subtype), nil
}

func (r *JobIndentRepo) Update(_ context.Context, line *entity.JobIndent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.updateJobIndent(*line)
	return nil
}

// StockMovementRepo adaptador en memoria de StockMovementRepository.
type StockMovementRepo struct {
	s  *Store
	mu sync.Locker
}

// NewStockMovementRepository construye el adaptador sobre el almacén.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s, mu: &s.mu}
}

func (r *StockMovementRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.createMovement(*mov)
	return nil
}

func (r *StockMovementRepo) ListByDirection(_ context.Context, direction string) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.listMovements(direction), nil
}
