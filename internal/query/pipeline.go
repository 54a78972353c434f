// AngelaMos | 2026
// pipeline.go

package query

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
)

// CreatedAt is the column used when no whitelisted sort was requested.
const CreatedAt Column = "created_at"

// Kind tells the pipeline how to read a filter value from the query string.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindBool
	KindDecimal
)

func (k Kind) parse(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	switch k {
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		return n, err == nil
	case KindBool:
		switch strings.ToLower(raw) {
		case "1", "true", "on", "yes":
			return true, true
		case "0", "false", "off", "no":
			return false, true
		}
		return nil, false
	case KindDecimal:
		d, err := decimal.NewFromString(raw)
		return d, err == nil
	default:
		return raw, true
	}
}

type Filter struct {
	Column Column
	Kind   Kind
}

func TextFilters(cols ...Column) []Filter {
	filters := make([]Filter, 0, len(cols))
	for _, c := range cols {
		filters = append(filters, Filter{Column: c, Kind: KindText})
	}
	return filters
}

// Relation eager-loads related records onto a page of items in one pass.
type Relation[T any] struct {
	Name string
	Load func(ctx context.Context, items []T) error
}

// Hook applies resource specific predicates. It runs after exact-match
// filters and before search, so whatever it adds narrows the set that search
// and sorting see.
type Hook func(b *Builder, p Params)

// Options is the whitelist configuration of one list endpoint.
type Options[T any] struct {
	Searchable []Column
	Sortable   []Column
	Filterable []Filter
	Relations  []Relation[T]
	Hook       Hook
}

// Apply runs the list pipeline on base: relation selection, exact filters,
// hook, search, sort, then pagination. Unknown or malformed client input is
// ignored. base is modified in place.
func Apply[T any](
	ctx context.Context,
	db core.DBTX,
	base *Builder,
	p Params,
	opts Options[T],
) (*Page[T], error) {
	ctx, span := core.StartQuerySpan(ctx, "query.Apply", base.Table(),
		core.AttrPage.Int(p.Page),
		core.AttrPerPage.Int(p.PerPage),
	)
	defer span.End()

	relations := opts.includes(p)
	opts.applyFilters(base, p)
	if opts.Hook != nil {
		opts.Hook(base, p)
	}
	opts.applySearch(base, p)
	opts.applySort(base, p)

	perPage := ClampPerPage(p.PerPage)
	current := max(p.Page, 1)

	countSQL, countArgs := base.CountSQL()
	var total int
	if err := db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("count %s: %w", base.Table(), err)
	}

	page := &Page[T]{
		Items:       make([]T, 0),
		CurrentPage: current,
		LastPage:    LastPage(total, perPage),
		PerPage:     perPage,
		Total:       total,
	}
	core.RecordPage(ctx, total, page.LastPage)

	// Checked before the offset is computed so a huge page cannot overflow it.
	if current > page.LastPage {
		return page, nil
	}

	offset := (current - 1) * perPage
	if offset >= total {
		return page, nil
	}

	selectSQL, selectArgs := base.SelectSQL(perPage, offset)
	if err := db.SelectContext(ctx, &page.Items, selectSQL, selectArgs...); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("select %s: %w", base.Table(), err)
	}

	for _, rel := range relations {
		if err := rel.Load(ctx, page.Items); err != nil {
			core.SetSpanError(ctx, err)
			return nil, fmt.Errorf("load %s.%s: %w", base.Table(), rel.Name, err)
		}
		core.RecordRelationLoaded(ctx, rel.Name, len(page.Items))
	}

	return page, nil
}

// includes resolves which relations to load. Every whitelisted relation is
// loaded by default; a client include list can only add names that are
// already whitelisted, and no_include turns loading off.
func (o Options[T]) includes(p Params) []Relation[T] {
	if len(o.Relations) == 0 || p.NoInclude {
		return nil
	}

	names := make([]string, 0, len(o.Relations))
	for _, rel := range o.Relations {
		names = append(names, rel.Name)
	}
	for _, requested := range p.Include {
		if o.relationAllowed(requested) && !slices.Contains(names, requested) {
			names = append(names, requested)
		}
	}

	out := make([]Relation[T], 0, len(names))
	for _, name := range names {
		for _, rel := range o.Relations {
			if rel.Name == name {
				out = append(out, rel)
				break
			}
		}
	}

	return out
}

func (o Options[T]) relationAllowed(name string) bool {
	for _, rel := range o.Relations {
		if rel.Name == name {
			return true
		}
	}
	return false
}

func (o Options[T]) applyFilters(b *Builder, p Params) {
	if len(o.Filterable) == 0 {
		return
	}

	// Iterate the whitelist, not the request, so predicate order is stable.
	for _, f := range o.Filterable {
		raw, ok := p.Filters[string(f.Column)]
		if !ok {
			continue
		}

		value, ok := f.Kind.parse(raw)
		if !ok {
			continue
		}

		b.WhereEqual(f.Column, value)
	}
}

func (o Options[T]) applySearch(b *Builder, p Params) {
	if p.Search == "" || len(o.Searchable) == 0 {
		return
	}
	b.WhereAnyContains(o.Searchable, p.Search)
}

func (o Options[T]) applySort(b *Builder, p Params) {
	if p.SortBy != "" && slices.Contains(o.Sortable, Column(p.SortBy)) {
		dir := p.SortDirection
		if dir != Desc {
			dir = Asc
		}
		b.OrderBy(Column(p.SortBy), dir)
		return
	}

	b.OrderBy(CreatedAt, Desc)
	b.OrderBy("id", Desc)
}
