package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Logical tables owned by the hosted platform.
const (
	TableUsers               = "users"
	TableCompanies           = "companies"
	TableServices            = "services"
	TableAppointments        = "appointments"
	TableAppointmentServices = "appointment_services"
)

var knownTables = map[string]bool{
	TableUsers:               true,
	TableCompanies:           true,
	TableServices:            true,
	TableAppointments:        true,
	TableAppointmentServices: true,
}

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrEmptyBatch   = errors.New("empty insert batch")
	ErrEmptyFilter  = errors.New("filter must not be empty")
)

// Row is a single record keyed by column name.
type Row map[string]any

// Filter is a conjunction of column equality conditions.
type Filter map[string]any

// RecordStore is the request/response contract of the external record store.
type RecordStore interface {
	// Insert writes rows as one batch and returns them with their assigned ids.
	Insert(ctx context.Context, table string, rows []Row) ([]Row, error)
	// Select returns every row matching filter. An empty filter selects all rows.
	Select(ctx context.Context, table string, filter Filter) ([]Row, error)
	// Update sets fields on every row matching filter and returns the affected count.
	Update(ctx context.Context, table string, filter Filter, fields Row) (int, error)
	// Delete removes every row matching filter and returns the affected count.
	Delete(ctx context.Context, table string, filter Filter) (int, error)
	Ping(ctx context.Context) error
}

// CheckTable rejects tables outside the known schema.
func CheckTable(table string) error {
	if !knownTables[table] {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}

// CheckInsert validates an insert call before it reaches a backend.
func CheckInsert(table string, rows []Row) error {
	if err := CheckTable(table); err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrEmptyBatch
	}
	return nil
}

// String returns the string value of key, or "" when absent or not a string.
func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// ID returns the row identifier as a string.
func (r Row) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Columns returns the row keys in a stable order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Columns returns the filter keys in a stable order.
func (f Filter) Columns() []string {
	return Row(f).Columns()
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
