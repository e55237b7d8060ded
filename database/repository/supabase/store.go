package supabaseRepo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"agendamento/database/repository"
	"agendamento/utils/supabase"
)

// SupabaseStore implements RecordStore on top of the PostgREST API.
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(client *supabase.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func tablePath(table string) string {
	return "/rest/v1/" + table
}

func returnRepresentation() http.Header {
	h := http.Header{}
	h.Set("Prefer", "return=representation")
	return h
}

// Insert posts the batch as a JSON array; PostgREST inserts it in one statement.
func (s *SupabaseStore) Insert(ctx context.Context, table string, rows []repository.Row) ([]repository.Row, error) {
	if err := repository.CheckInsert(table, rows); err != nil {
		return nil, err
	}
	var out []repository.Row
	_, err := s.client.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   tablePath(table),
		Header: returnRepresentation(),
		Body:   rows,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return out, nil
}

func (s *SupabaseStore) Select(ctx context.Context, table string, filter repository.Filter) ([]repository.Row, error) {
	if err := repository.CheckTable(table); err != nil {
		return nil, err
	}
	q := filterQuery(filter)
	q.Set("select", "*")

	var out []repository.Row
	if _, err := s.client.Do(ctx, supabase.Request{Method: http.MethodGet, Path: tablePath(table), Query: q}, &out); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return out, nil
}

func (s *SupabaseStore) Update(ctx context.Context, table string, filter repository.Filter, fields repository.Row) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	var out []repository.Row
	_, err := s.client.Do(ctx, supabase.Request{
		Method: http.MethodPatch,
		Path:   tablePath(table),
		Query:  filterQuery(filter),
		Header: returnRepresentation(),
		Body:   fields,
	}, &out)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	return len(out), nil
}

func (s *SupabaseStore) Delete(ctx context.Context, table string, filter repository.Filter) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	var out []repository.Row
	_, err := s.client.Do(ctx, supabase.Request{
		Method: http.MethodDelete,
		Path:   tablePath(table),
		Query:  filterQuery(filter),
		Header: returnRepresentation(),
	}, &out)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return len(out), nil
}

func (s *SupabaseStore) Ping(ctx context.Context) error {
	_, err := s.client.Do(ctx, supabase.Request{Method: http.MethodGet, Path: "/rest/v1/"}, nil)
	return err
}

// filterQuery renders equality filters in PostgREST syntax (col=eq.value).
func filterQuery(filter repository.Filter) url.Values {
	q := url.Values{}
	for _, col := range filter.Columns() {
		if filter[col] == nil {
			q.Set(col, "is.null")
			continue
		}
		q.Set(col, "eq."+formatValue(filter[col]))
	}
	return q
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
