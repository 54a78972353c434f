// AngelaMos | 2026
// repository.go

package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Schema describes the table behind a resource. Resource is the name used in
// client facing messages, e.g. "User not found.".
type Schema struct {
	Resource string
	Table    string
	Columns  []query.Column
}

// Values is an ordered column assignment used by Create and Update.
type Values struct {
	cols []query.Column
	args []any
}

func (v *Values) Set(c query.Column, value any) {
	for i, existing := range v.cols {
		if existing == c {
			v.args[i] = value
			return
		}
	}
	v.cols = append(v.cols, c)
	v.args = append(v.args, value)
}

func (v *Values) Get(c query.Column) (any, bool) {
	for i, existing := range v.cols {
		if existing == c {
			return v.args[i], true
		}
	}
	return nil, false
}

func (v *Values) Del(c query.Column) {
	for i, existing := range v.cols {
		if existing == c {
			v.cols = append(v.cols[:i], v.cols[i+1:]...)
			v.args = append(v.args[:i], v.args[i+1:]...)
			return
		}
	}
}

func (v *Values) Len() int {
	return len(v.cols)
}

// Repository implements find, create, update, delete and list for one table
// whose primary key is a bigint "id" column with created_at/updated_at
// timestamps.
type Repository[T any] struct {
	db     core.DBTX
	schema Schema
}

func New[T any](db core.DBTX, schema Schema) *Repository[T] {
	return &Repository[T]{db: db, schema: schema}
}

func (r *Repository[T]) DB() core.DBTX {
	return r.db
}

// Base returns a fresh list query over the schema's columns.
func (r *Repository[T]) Base() *query.Builder {
	return query.From(r.schema.Table, r.schema.Columns...)
}

func (r *Repository[T]) Table() string {
	return pgx.Identifier{r.schema.Table}.Sanitize()
}

// Returning renders the schema's columns for SELECT and RETURNING lists.
func (r *Repository[T]) Returning() string {
	cols := make([]string, 0, len(r.schema.Columns))
	for _, c := range r.schema.Columns {
		cols = append(cols, pgx.Identifier{string(c)}.Sanitize())
	}
	return strings.Join(cols, ", ")
}

func (r *Repository[T]) NotFound() *core.AppError {
	return core.NotFoundError(r.schema.Resource)
}

func (r *Repository[T]) Find(ctx context.Context, id int64) (*T, error) {
	ctx, span := r.start(ctx, "crud.Find", core.AttrRecordID.Int64(id))
	defer span.End()

	q := fmt.Sprintf(
		`SELECT %s FROM %s WHERE "id" = $1`,
		r.Returning(),
		r.Table(),
	)

	var item T
	if err := r.db.GetContext(ctx, &item, q, id); err != nil {
		return nil, r.Wrap(ctx, "find", err)
	}

	return &item, nil
}

func (r *Repository[T]) Create(ctx context.Context, v Values) (*T, error) {
	ctx, span := r.start(ctx, "crud.Create")
	defer span.End()

	cols := make([]string, 0, v.Len()+2)
	holders := make([]string, 0, v.Len()+2)
	for _, c := range v.cols {
		cols = append(cols, pgx.Identifier{string(c)}.Sanitize())
		holders = append(holders, "?")
	}
	cols = append(cols, `"created_at"`, `"updated_at"`)
	holders = append(holders, "NOW()", "NOW()")

	q := sqlx.Rebind(sqlx.DOLLAR, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.Table(),
		strings.Join(cols, ", "),
		strings.Join(holders, ", "),
		r.Returning(),
	))

	var item T
	if err := r.db.GetContext(ctx, &item, q, v.args...); err != nil {
		return nil, r.Wrap(ctx, "create", err)
	}

	return &item, nil
}

// Update applies v to the row and returns it. An empty v changes nothing and
// behaves like Find.
func (r *Repository[T]) Update(
	ctx context.Context,
	id int64,
	v Values,
) (*T, error) {
	if v.Len() == 0 {
		return r.Find(ctx, id)
	}

	ctx, span := r.start(ctx, "crud.Update", core.AttrRecordID.Int64(id))
	defer span.End()

	sets := make([]string, 0, v.Len()+1)
	for _, c := range v.cols {
		sets = append(sets, pgx.Identifier{string(c)}.Sanitize()+" = ?")
	}
	sets = append(sets, `"updated_at" = NOW()`)

	q := sqlx.Rebind(sqlx.DOLLAR, fmt.Sprintf(
		`UPDATE %s SET %s WHERE "id" = ? RETURNING %s`,
		r.Table(),
		strings.Join(sets, ", "),
		r.Returning(),
	))

	args := make([]any, 0, v.Len()+1)
	args = append(args, v.args...)
	args = append(args, id)

	var item T
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		return nil, r.Wrap(ctx, "update", err)
	}

	return &item, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	ctx, span := r.start(ctx, "crud.Delete", core.AttrRecordID.Int64(id))
	defer span.End()

	q := fmt.Sprintf(`DELETE FROM %s WHERE "id" = $1`, r.Table())

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return r.Wrap(ctx, "delete", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return r.Wrap(ctx, "delete", err)
	}

	if rows == 0 {
		return r.Wrap(ctx, "delete", sql.ErrNoRows)
	}

	return nil
}

// Exists reports whether another row has value in column c. exceptID
// excludes the row being updated; pass 0 on create.
func (r *Repository[T]) Exists(
	ctx context.Context,
	c query.Column,
	value any,
	exceptID int64,
) (bool, error) {
	q := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND "id" <> $2)`,
		r.Table(),
		pgx.Identifier{string(c)}.Sanitize(),
	)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, value, exceptID); err != nil {
		return false, r.Wrap(ctx, "exists", err)
	}

	return exists, nil
}

func (r *Repository[T]) List(
	ctx context.Context,
	p query.Params,
	opts query.Options[T],
) (*query.Page[T], error) {
	return query.Apply(ctx, r.db, r.Base(), p, opts)
}

// Wrap annotates err with the operation and table and translates store
// failures into the core taxonomy: no rows becomes the resource's not-found
// error, unique and foreign key violations become ErrDuplicateKey and
// ErrForeignKey while keeping the *pgconn.PgError reachable.
func (r *Repository[T]) Wrap(ctx context.Context, op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", op, r.schema.Table, r.NotFound())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s %s: %w: %w", op, r.schema.Table, core.ErrDuplicateKey, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s %s: %w: %w", op, r.schema.Table, core.ErrForeignKey, err)
		}
	}

	core.SetSpanError(ctx, err)
	return fmt.Errorf("%s %s: %w", op, r.schema.Table, err)
}

// ConstraintName returns the violated constraint carried by err, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func (r *Repository[T]) start(
	ctx context.Context,
	name string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	return core.StartQuerySpan(ctx, name, r.schema.Table, attrs...)
}
