package store

import (
	"strings"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"
)

// Store is the immutable in-memory collection of currencies. It is built
// once at startup and never mutated, so all lookups are safe for
// concurrent use without locking.
type Store struct {
	currencies []entity.Currency
	byCode     map[string]*entity.Currency
	byID       map[int64]*entity.Currency
}

// New builds a Store from the loaded currencies, keeping their original
// order for iteration. Code lookups are case-insensitive; when two
// records share a code, the later one wins.
func New(currencies []entity.Currency) *Store {
	s := &Store{
		currencies: currencies,
		byCode:     make(map[string]*entity.Currency, len(currencies)),
		byID:       make(map[int64]*entity.Currency, len(currencies)),
	}
	for i := range s.currencies {
		cur := &s.currencies[i]
		s.byCode[strings.ToUpper(cur.Code)] = cur
		s.byID[cur.ID] = cur
	}
	return s
}

// All returns the currencies in their natural (load) order.
func (s *Store) All() []entity.Currency {
	return s.currencies
}

func (s *Store) Len() int {
	return len(s.currencies)
}

// ByCode resolves a currency by its code, case-insensitively.
func (s *Store) ByCode(code string) (*entity.Currency, bool) {
	cur, ok := s.byCode[strings.ToUpper(code)]
	return cur, ok
}

// ByID resolves a currency by its numeric identifier.
func (s *Store) ByID(id int64) (*entity.Currency, bool) {
	cur, ok := s.byID[id]
	return cur, ok
}
