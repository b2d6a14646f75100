package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowTable holds the SQL shared by every entity table: reads, deletes and
// the INSERT/UPDATE builders. Entity tables add Create and Update.
type rowTable[E any] struct {
	backend   *Backend
	entity    string
	table     string
	idCol     string
	parentCol string
	orderBy   string
	columns   []string
	scan      func(scanner) (*E, error)
}

func (t rowTable[E]) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.table
}

// Get returns the row or ErrNotFound.
func (t rowTable[E]) Get(ctx context.Context, id string) (*E, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx, t.selectSQL()+" WHERE "+t.idCol+" = ?", id)
	e, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.entity, id, err)
	}
	return e, nil
}

// ListByParent returns the rows owned by parentID in listing order.
func (t rowTable[E]) ListByParent(ctx context.Context, parentID string) ([]*E, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	query := t.selectSQL() + " WHERE " + t.parentCol + " = ? ORDER BY " + t.orderBy
	return t.query(ctx, db, query, parentID)
}

// ListAll returns every row, oldest first.
func (t rowTable[E]) ListAll(ctx context.Context) ([]*E, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	query := t.selectSQL() + " ORDER BY created_at, " + t.idCol
	return t.query(ctx, db, query)
}

// Delete removes exactly this row; foreign keys take care of the rest.
// A missing id is a no-op.
func (t rowTable[E]) Delete(ctx context.Context, id string) error {
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM "+t.table+" WHERE "+t.idCol+" = ?", id); err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.entity, id, err)
	}
	return nil
}

// query runs a select and scans every row. Rows are closed before return
// so the single connection is free for the next statement.
func (t rowTable[E]) query(ctx context.Context, q querier, query string, args ...any) ([]*E, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.table, err)
	}
	defer rows.Close()

	out := []*E{}
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.entity, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.table, err)
	}
	return out, nil
}

func (t rowTable[E]) exists(ctx context.Context, q querier, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+t.table+" WHERE "+t.idCol+" = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s %s: %w", t.entity, id, err)
	}
	return true, nil
}

// insert writes a new row. A duplicate id is reported as ErrInvalidID.
func (t rowTable[E]) insert(ctx context.Context, q querier, id string, f *fields) error {
	if f.err != nil {
		return fmt.Errorf("creating %s %s: %w", t.entity, id, f.err)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.cols)), ", ")
	query := "INSERT INTO " + t.table + " (" + strings.Join(f.cols, ", ") + ") VALUES (" + placeholders + ")"
	if _, err := q.ExecContext(ctx, query, f.args...); err != nil {
		if found, _ := t.exists(ctx, q, id); found {
			return fmt.Errorf("creating %s %s: %w: id already exists", t.entity, id, types.ErrInvalidID)
		}
		return fmt.Errorf("creating %s %s: %w", t.entity, id, err)
	}
	return nil
}

// update applies the supplied columns, plus updated_at when non-zero.
// Returns whether a row matched.
func (t rowTable[E]) update(ctx context.Context, q querier, id string, f *fields, updatedAt time.Time) (bool, error) {
	if f.err != nil {
		return false, fmt.Errorf("updating %s %s: %w", t.entity, id, f.err)
	}
	if !updatedAt.IsZero() {
		f.setTime("updated_at", updatedAt)
	}
	if len(f.cols) == 0 {
		return t.exists(ctx, q, id)
	}

	sets := make([]string, len(f.cols))
	for i, col := range f.cols {
		sets[i] = col + " = ?"
	}
	query := "UPDATE " + t.table + " SET " + strings.Join(sets, ", ") + " WHERE " + t.idCol + " = ?"
	res, err := q.ExecContext(ctx, query, append(f.args, id)...)
	if err != nil {
		return false, fmt.Errorf("updating %s %s: %w", t.entity, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating %s %s: %w", t.entity, id, err)
	}
	return n > 0, nil
}

