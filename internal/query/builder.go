// AngelaMos | 2026
// builder.go

package query

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
)

// Column is a column name declared by a resource. Values of this type come
// from code, never from the request, which is what makes interpolating them
// into SQL safe.
type Column string

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection returns Desc for "desc" in any case and Asc for anything else.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), "desc") {
		return Desc
	}
	return Asc
}

// Builder accumulates a single-table SELECT. Conditions use ? placeholders
// and are rebound to $n when the statement is rendered.
type Builder struct {
	table   string
	columns []Column
	where   []string
	args    []any
	orderBy []string
}

func From(table string, columns ...Column) *Builder {
	return &Builder{
		table:   table,
		columns: columns,
	}
}

func (b *Builder) Table() string {
	return b.table
}

// Ident returns the quoted, table-qualified name of c.
func (b *Builder) Ident(c Column) string {
	return pgx.Identifier{b.table, string(c)}.Sanitize()
}

// Where adds a raw predicate. expr must only reference identifiers chosen
// by the caller; user input goes in args.
func (b *Builder) Where(expr string, args ...any) *Builder {
	b.where = append(b.where, expr)
	b.args = append(b.args, args...)
	return b
}

func (b *Builder) WhereEqual(c Column, value any) *Builder {
	return b.Where(b.Ident(c)+" = ?", value)
}

// WhereAnyContains matches rows where at least one of cols contains term,
// case-insensitively.
func (b *Builder) WhereAnyContains(cols []Column, term string) *Builder {
	if len(cols) == 0 {
		return b
	}

	pattern := Contains(term)
	clauses := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		clauses = append(clauses, fmt.Sprintf("CAST(%s AS TEXT) ILIKE ?", b.Ident(c)))
		args = append(args, pattern)
	}

	return b.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func (b *Builder) OrderBy(c Column, d Direction) *Builder {
	b.orderBy = append(b.orderBy, b.Ident(c)+" "+string(d))
	return b
}

func (b *Builder) CountSQL() (string, []any) {
	q := "SELECT COUNT(*) FROM " + pgx.Identifier{b.table}.Sanitize() + b.whereClause()
	return sqlx.Rebind(sqlx.DOLLAR, q), b.copyArgs()
}

func (b *Builder) SelectSQL(limit, offset int) (string, []any) {
	cols := make([]string, 0, len(b.columns))
	for _, c := range b.columns {
		cols = append(cols, b.Ident(c))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(pgx.Identifier{b.table}.Sanitize())
	sb.WriteString(b.whereClause())
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	sb.WriteString(" LIMIT ? OFFSET ?")

	args := append(b.copyArgs(), limit, offset)
	return sqlx.Rebind(sqlx.DOLLAR, sb.String()), args
}

func (b *Builder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

func (b *Builder) copyArgs() []any {
	args := make([]any, len(b.args), len(b.args)+2)
	copy(args, b.args)
	return args
}

// Contains turns term into an ILIKE pattern with its wildcards escaped.
func Contains(term string) string {
	return "%" + escapeLike(term) + "%"
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
