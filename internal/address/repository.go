// AngelaMos | 2026
// repository.go

package address

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const (
	ColumnUserID     query.Column = "user_id"
	ColumnLabel      query.Column = "label"
	ColumnStreet     query.Column = "street"
	ColumnBarangay   query.Column = "barangay"
	ColumnCity       query.Column = "city"
	ColumnProvince   query.Column = "province"
	ColumnPostalCode query.Column = "postal_code"
	ColumnCountry    query.Column = "country"
	ColumnIsDefault  query.Column = "is_default"
)

var schema = crud.Schema{
	Resource: "Address",
	Table:    "addresses",
	Columns: []query.Column{
		"id",
		ColumnUserID,
		ColumnLabel,
		ColumnStreet,
		ColumnBarangay,
		ColumnCity,
		ColumnProvince,
		ColumnPostalCode,
		ColumnCountry,
		ColumnIsDefault,
		query.CreatedAt,
		"updated_at",
	},
}

var textColumns = []query.Column{
	ColumnLabel,
	ColumnStreet,
	ColumnBarangay,
	ColumnCity,
	ColumnProvince,
	ColumnPostalCode,
	ColumnCountry,
}

type Repository struct {
	*crud.Repository[Address]
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{Repository: crud.New[Address](db, schema)}
}

func (r *Repository) options() query.Options[Address] {
	return query.Options[Address]{
		Searchable: textColumns,
		Sortable:   textColumns,
		Filterable: []query.Filter{
			{Column: ColumnUserID, Kind: query.KindInt},
			{Column: ColumnCity, Kind: query.KindText},
			{Column: ColumnProvince, Kind: query.KindText},
			{Column: ColumnCountry, Kind: query.KindText},
			{Column: ColumnIsDefault, Kind: query.KindBool},
		},
		Relations: []query.Relation[Address]{
			{Name: "user", Load: r.loadOwners},
		},
		Hook: ownerHook,
	}
}

func (r *Repository) List(
	ctx context.Context,
	p query.Params,
) (*query.Page[Address], error) {
	return r.Repository.List(ctx, p, r.options())
}

// ownerHook narrows addresses to users whose name or email contains the
// owner parameter.
func ownerHook(b *query.Builder, p query.Params) {
	term := strings.TrimSpace(p.Values.Get("owner"))
	if term == "" {
		return
	}

	pattern := query.Contains(term)
	b.Where(
		`EXISTS (SELECT 1 FROM users u WHERE u.id = `+b.Ident(ColumnUserID)+
			` AND (u.name ILIKE ? OR u.email ILIKE ?))`,
		pattern,
		pattern,
	)
}

func (r *Repository) loadOwners(ctx context.Context, items []Address) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.UserID)
	}

	q, args, err := sqlx.In(`SELECT id, name, email FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("build address owners query: %w", err)
	}

	var owners []Owner
	if err := r.DB().SelectContext(ctx, &owners, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return fmt.Errorf("load address owners: %w", err)
	}

	byID := make(map[int64]*Owner, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}

	for i := range items {
		items[i].User = byID[items[i].UserID]
	}

	return nil
}

// ListByUserIDs returns the addresses of the given users, default address
// first.
func (r *Repository) ListByUserIDs(
	ctx context.Context,
	userIDs []int64,
) ([]Address, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	q, args, err := sqlx.In(fmt.Sprintf(
		`SELECT %s FROM addresses WHERE user_id IN (?) ORDER BY is_default DESC, id`,
		r.Returning(),
	), userIDs)
	if err != nil {
		return nil, fmt.Errorf("build user addresses query: %w", err)
	}

	var addresses []Address
	if err := r.DB().SelectContext(ctx, &addresses, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, fmt.Errorf("list user addresses: %w", err)
	}

	return addresses, nil
}
