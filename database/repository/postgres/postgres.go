package postgresRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"agendamento/database/repository"

	"github.com/lib/pq"
)

var ErrMixedColumns = errors.New("all rows in a batch must have the same columns")

// PostgresStore implements RecordStore over database/sql with the lib/pq driver.
type PostgresStore struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresStore(db *sql.DB, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

// Open opens a pooled connection to dsn.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func (s *PostgresStore) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

// Insert writes the batch as one multi-row INSERT ... RETURNING *.
func (s *PostgresStore) Insert(ctx context.Context, table string, rows []repository.Row) ([]repository.Row, error) {
	if err := repository.CheckInsert(table, rows); err != nil {
		return nil, err
	}
	query, args, err := buildInsert(table, rows)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	result, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	defer result.Close()
	return scanRows(result)
}

func (s *PostgresStore) Select(ctx context.Context, table string, filter repository.Filter) ([]repository.Row, error) {
	if err := repository.CheckTable(table); err != nil {
		return nil, err
	}
	where, args := buildWhere(filter, 1)
	query := "SELECT * FROM " + pq.QuoteIdentifier(table) + where

	ctx, cancel := s.newContext(ctx)
	defer cancel()

	result, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer result.Close()
	return scanRows(result)
}

func (s *PostgresStore) Update(ctx context.Context, table string, filter repository.Filter, fields repository.Row) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}

	cols := fields.Columns()
	sets := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+len(filter))
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), i+1))
		args = append(args, fields[c])
	}
	where, whereArgs := buildWhere(filter, len(cols)+1)
	query := "UPDATE " + pq.QuoteIdentifier(table) + " SET " + strings.Join(sets, ", ") + where

	return s.exec(ctx, table, query, append(args, whereArgs...))
}

func (s *PostgresStore) Delete(ctx context.Context, table string, filter repository.Filter) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	where, args := buildWhere(filter, 1)
	query := "DELETE FROM " + pq.QuoteIdentifier(table) + where

	return s.exec(ctx, table, query, args)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := s.newContext(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) exec(ctx context.Context, table, query string, args []interface{}) (int, error) {
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows on %s: %w", table, err)
	}
	return int(n), nil
}

func buildInsert(table string, rows []repository.Row) (string, []interface{}, error) {
	cols := rows[0].Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}

	args := make([]interface{}, 0, len(cols)*len(rows))
	tuples := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(r) != len(cols) {
			return "", nil, ErrMixedColumns
		}
		marks := make([]string, len(cols))
		for i, c := range cols {
			v, ok := r[c]
			if !ok {
				return "", nil, ErrMixedColumns
			}
			args = append(args, v)
			marks[i] = fmt.Sprintf("$%d", len(args))
		}
		tuples = append(tuples, "("+strings.Join(marks, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(tuples, ", "))
	return query, args, nil
}

// buildWhere renders filter as a WHERE clause whose placeholders start at $first.
func buildWhere(filter repository.Filter, first int) (string, []interface{}) {
	if len(filter) == 0 {
		return "", nil
	}
	cols := filter.Columns()
	conds := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, c := range cols {
		conds[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), first+i)
		args[i] = filter[c]
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRows(rows *sql.Rows) ([]repository.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []repository.Row
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(repository.Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
