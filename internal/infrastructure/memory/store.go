package memory

import (
	"sort"
	"sync"

	"github.com/sethmayank01/gew-erp/internal/domain/entity"
)

// Store mantiene las cuatro tablas lógicas del motor en memoria. Pensado para
// tests y desarrollo: misma semántica que el backend PostgreSQL (documentos
// por clave, orden de inserción en job_indents y movimientos).
type Store struct {
	mu         sync.Mutex
	stock      []entity.StockEntry
	indents    []entity.IndentStock
	jobIndents []entity.JobIndent
	movements  []entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{}
}

// snapshot copia el estado completo para el rollback del TxRunner.
func (s *Store) snapshot() *Store {
	return &Store{
		stock:      append([]entity.StockEntry(nil), s.stock...),
		indents:    append([]entity.IndentStock(nil), s.indents...),
		jobIndents: append([]entity.JobIndent(nil), s.jobIndents...),
		movements:  append([]entity.StockMovement(nil), s.movements...),
	}
}

func (s *Store) restore(snap *Store) {
	s.stock = snap.stock
	s.indents = snap.indents
	s.jobIndents = snap.jobIndents
	s.movements = snap.movements
}

// ── stock ────────────────────────────────────────────────────────────────────

func (s *Store) insertStock(e entity.StockEntry) {
	s.stock = append(s.stock, e)
}

func (s *Store) findStock(key, invoice string) int {
	for i := range s.stock {
		if s.stock[i].Key == key && s.stock[i].Invoice == invoice {
			return i
		}
	}
	return -1
}

func (s *Store) getStock(key, invoice string) *entity.StockEntry {
	if i := s.findStock(key, invoice); i >= 0 {
		e := s.stock[i]
		return &e
	}
	return nil
}

func (s *Store) updateStock(e entity.StockEntry) {
	if i := s.findStock(e.Key, e.Invoice); i >= 0 {
		s.stock[i] = e
	}
}

func (s *Store) deleteStock(key, invoice string) bool {
	if i := s.findStock(key, invoice); i >= 0 {
		s.stock = append(s.stock[:i], s.stock[i+1:]...)
		return true
	}
	return false
}

func (s *Store) listStock() []*entity.StockEntry {
	list := make([]*entity.StockEntry, 0, len(s.stock))
	for i := range s.stock {
		e := s.stock[i]
		list = append(list, &e)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}

func (s *Store) upsertStockByKey(e entity.StockEntry) {
	kept := s.stock[:0]
	for i := range s.stock {
		if s.stock[i].Key != e.Key {
			kept = append(kept, s.stock[i])
		}
	}
	s.stock = append(kept, e)
}

// ── indent_stock ─────────────────────────────────────────────────────────────

func (s *Store) findIndent(key string) int {
	for i := range s.indents {
		if s.indents[i].Key == key {
			return i
		}
	}
	return -1
}

func (s *Store) getIndent(key string) *entity.IndentStock {
	if i := s.findIndent(key); i >= 0 {
		a := s.indents[i]
		return &a
	}
	return nil
}

func (s *Store) upsertIndent(a entity.IndentStock) {
	if i := s.findIndent(a.Key); i >= 0 {
		s.indents[i] = a
		return
	}
	s.indents = append(s.indents, a)
}

func (s *Store) listIndents() []*entity.IndentStock {
	list := make([]*entity.IndentStock, 0, len(s.indents))
	for i := range s.indents {
		a := s.indents[i]
		list = append(list, &a)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}

// ── job_indents ──────────────────────────────────────────────────────────────

func (s *Store) createJobIndent(l entity.JobIndent) {
	s.jobIndents = append(s.jobIndents, l)
}

func (s *Store) listJobIndents(jobID string) []*entity.JobIndent {
	var list []*entity.JobIndent
	for i := range s.jobIndents {
		if s.jobIndents[i].JobID == jobID {
			l := s.jobIndents[i]
			list = append(list, &l)
		}
	}
	return list
}

func (s *Store) firstJobIndentMatch(jobID, matType, subtype string) *entity.JobIndent {
	for i := range s.jobIndents {
		l := s.jobIndents[i]
		if l.JobID == jobID && l.Type == matType && l.Subtype == subtype {
			return &l
		}
	}
	return nil
}

func (s *Store) updateJobIndent(l entity.JobIndent) {
	for i := range s.jobIndents {
		if s.jobIndents[i].ID == l.ID {
			s.jobIndents[i] = l
			return
		}
	}
}

// ── stock_movements ──────────────────────────────────────────────────────────

func (s *Store) createMovement(m entity.StockMovement) {
	s.movements = append(s.movements, m)
}

func (s *Store) listMovements(direction string) []*entity.StockMovement {
	var list []*entity.StockMovement
	for i := range s.movements {
		if s.movements[i].Direction == direction {
			m := s.movements[i]
			list = append(list, &m)
		}
	}
	return list
}
