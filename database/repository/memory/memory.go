package memoryRepo

import (
	"context"
	"reflect"
	"sync"

	"agendamento/database/repository"

	"github.com/google/uuid"
)

// MemoryStore is an in-process RecordStore used for local development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]repository.Row
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]repository.Row)}
}

// Insert appends rows, assigning a uuid to rows without an id.
func (s *MemoryStore) Insert(ctx context.Context, table string, rows []repository.Row) ([]repository.Row, error) {
	if err := repository.CheckInsert(table, rows); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]repository.Row, 0, len(rows))
	for _, r := range rows {
		stored := r.Clone()
		if stored.ID() == "" {
			stored["id"] = uuid.New().String()
		}
		out = append(out, stored)
	}

	s.mu.Lock()
	for _, r := range out {
		s.tables[table] = append(s.tables[table], r.Clone())
	}
	s.mu.Unlock()
	return out, nil
}

func (s *MemoryStore) Select(ctx context.Context, table string, filter repository.Filter) ([]repository.Row, error) {
	if err := repository.CheckTable(table); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []repository.Row
	for _, r := range s.tables[table] {
		if matches(r, filter) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, table string, filter repository.Filter, fields repository.Row) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.tables[table] {
		if !matches(r, filter) {
			continue
		}
		for k, v := range fields {
			r[k] = v
		}
		n++
	}
	return n, nil
}

func (s *MemoryStore) Delete(ctx context.Context, table string, filter repository.Filter) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tables[table][:0]
	n := 0
	for _, r := range s.tables[table] {
		if matches(r, filter) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.tables[table] = kept
	return n, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Count returns the number of rows held in table.
func (s *MemoryStore) Count(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

func matches(r repository.Row, filter repository.Filter) bool {
	for k, want := range filter {
		got, ok := r[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
