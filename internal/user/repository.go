// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/go-crud-api/internal/address"
	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const (
	ColumnName     query.Column = "name"
	ColumnEmail    query.Column = "email"
	ColumnPassword query.Column = "password"
)

const dateLayout = "2006-01-02"

var schema = crud.Schema{
	Resource: "User",
	Table:    "users",
	Columns: []query.Column{
		"id",
		ColumnName,
		ColumnEmail,
		query.CreatedAt,
		"updated_at",
	},
}

type Repository struct {
	*crud.Repository[User]
	addresses   *address.Repository
	permissions *permission.Repository
}

func NewRepository(
	db core.DBTX,
	addresses *address.Repository,
	permissions *permission.Repository,
) *Repository {
	return &Repository{
		Repository:  crud.New[User](db, schema),
		addresses:   addresses,
		permissions: permissions,
	}
}

func (r *Repository) options() query.Options[User] {
	return query.Options[User]{
		Searchable: []query.Column{ColumnName, ColumnEmail},
		Sortable:   []query.Column{ColumnName, ColumnEmail, query.CreatedAt},
		Filterable: query.TextFilters(ColumnName, ColumnEmail),
		Relations: []query.Relation[User]{
			{Name: "addresses", Load: r.loadAddresses},
			{Name: "permissions", Load: r.loadPermissions},
		},
		Hook: userHook,
	}
}

func (r *Repository) List(
	ctx context.Context,
	p query.Params,
) (*query.Page[User], error) {
	return r.Repository.List(ctx, p, r.options())
}

// userHook applies created_from and created_to (inclusive calendar days) and
// permission, which keeps users holding the named permission.
func userHook(b *query.Builder, p query.Params) {
	if from, err := time.Parse(dateLayout, strings.TrimSpace(p.Values.Get("created_from"))); err == nil {
		b.Where(b.Ident(query.CreatedAt)+" >= ?", from)
	}
	if to, err := time.Parse(dateLayout, strings.TrimSpace(p.Values.Get("created_to"))); err == nil {
		b.Where(b.Ident(query.CreatedAt)+" < ?", to.AddDate(0, 0, 1))
	}
	if name := strings.TrimSpace(p.Values.Get("permission")); name != "" {
		b.Where(`EXISTS (SELECT 1 FROM permission_user pu JOIN permissions p ON p.id = pu.permission_id `+
			`WHERE pu.user_id = `+b.Ident("id")+` AND p.name = ?)`, name)
	}
}

// FindWithRelations is Find plus every relation the list endpoint loads.
func (r *Repository) FindWithRelations(ctx context.Context, id int64) (*User, error) {
	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	items := []User{*u}
	for _, rel := range r.options().Relations {
		if err := rel.Load(ctx, items); err != nil {
			return nil, fmt.Errorf("load user %s: %w", rel.Name, err)
		}
	}

	return &items[0], nil
}

// Create stores the user, hashing the password value first.
func (r *Repository) Create(ctx context.Context, v crud.Values) (*User, error) {
	if err := hashPassword(&v); err != nil {
		return nil, err
	}
	return r.Repository.Create(ctx, v)
}

// Update hashes a present, non-empty password before writing. An empty
// password is dropped rather than stored.
func (r *Repository) Update(
	ctx context.Context,
	id int64,
	v crud.Values,
) (*User, error) {
	if err := hashPassword(&v); err != nil {
		return nil, err
	}
	return r.Repository.Update(ctx, id, v)
}

func hashPassword(v *crud.Values) error {
	raw, ok := v.Get(ColumnPassword)
	if !ok {
		return nil
	}

	plain, _ := raw.(string)
	if plain == "" {
		v.Del(ColumnPassword)
		return nil
	}

	hash, err := core.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	v.Set(ColumnPassword, hash)
	return nil
}

func userIDs(items []User) []int64 {
	ids := make([]int64, 0, len(items))
	for _, u := range items {
		ids = append(ids, u.ID)
	}
	return ids
}

func (r *Repository) loadAddresses(ctx context.Context, items []User) error {
	if len(items) == 0 {
		return nil
	}

	addresses, err := r.addresses.ListByUserIDs(ctx, userIDs(items))
	if err != nil {
		return err
	}

	byUser := make(map[int64][]address.Address, len(items))
	for _, a := range addresses {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	for i := range items {
		list := byUser[items[i].ID]
		if list == nil {
			list = []address.Address{}
		}
		items[i].Addresses = &list
	}

	return nil
}

func (r *Repository) loadPermissions(ctx context.Context, items []User) error {
	if len(items) == 0 {
		return nil
	}

	grants, err := r.permissions.ListByUserIDs(ctx, userIDs(items))
	if err != nil {
		return err
	}

	byUser := make(map[int64][]permission.Permission, len(items))
	for _, g := range grants {
		byUser[g.UserID] = append(byUser[g.UserID], g.Permission)
	}

	for i := range items {
		list := byUser[items[i].ID]
		if list == nil {
			list = []permission.Permission{}
		}
		items[i].Permissions = &list
	}

	return nil
}
