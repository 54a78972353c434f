// AngelaMos | 2026
// repository.go

package permission

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const (
	ColumnName  query.Column = "name"
	ColumnLabel query.Column = "label"
	ColumnGroup query.Column = "group"
)

var schema = crud.Schema{
	Resource: "Permission",
	Table:    "permissions",
	Columns: []query.Column{
		"id",
		ColumnName,
		ColumnLabel,
		ColumnGroup,
		query.CreatedAt,
		"updated_at",
	},
}

type Repository struct {
	*crud.Repository[Permission]
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Repository: crud.New[Permission](db, schema),
		db:         db,
	}
}

func (r *Repository) options() query.Options[Permission] {
	return query.Options[Permission]{
		Searchable: []query.Column{ColumnName, ColumnLabel, ColumnGroup},
		Sortable:   []query.Column{ColumnName, ColumnLabel, ColumnGroup, query.CreatedAt},
		Filterable: query.TextFilters(ColumnGroup, ColumnName),
		Relations: []query.Relation[Permission]{
			{Name: "users", Load: r.loadUsers},
		},
	}
}

func (r *Repository) List(
	ctx context.Context,
	p query.Params,
) (*query.Page[Permission], error) {
	return r.Repository.List(ctx, p, r.options())
}

func (r *Repository) loadUsers(ctx context.Context, items []Permission) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}

	q, args, err := sqlx.In(`
		SELECT pu.permission_id, u.id, u.name, u.email
		FROM users u
		JOIN permission_user pu ON pu.user_id = u.id
		WHERE pu.permission_id IN (?)
		ORDER BY u.id`, ids)
	if err != nil {
		return fmt.Errorf("build permission users query: %w", err)
	}

	var holders []Holder
	if err := r.DB().SelectContext(ctx, &holders, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return fmt.Errorf("load permission users: %w", err)
	}

	byPermission := make(map[int64][]Holder, len(items))
	for _, h := range holders {
		byPermission[h.PermissionID] = append(byPermission[h.PermissionID], h)
	}

	for i := range items {
		users := byPermission[items[i].ID]
		if users == nil {
			users = []Holder{}
		}
		items[i].Users = &users
	}

	return nil
}

// ListByUserIDs returns the permissions held by each of the given users,
// ordered by name.
func (r *Repository) ListByUserIDs(
	ctx context.Context,
	userIDs []int64,
) ([]Grant, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	q, args, err := sqlx.In(`
		SELECT pu.user_id, p.id, p.name, p.label, p."group", p.created_at, p.updated_at
		FROM permissions p
		JOIN permission_user pu ON pu.permission_id = p.id
		WHERE pu.user_id IN (?)
		ORDER BY p.name`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("build user permissions query: %w", err)
	}

	var grants []Grant
	if err := r.DB().SelectContext(ctx, &grants, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, fmt.Errorf("list user permissions: %w", err)
	}

	return grants, nil
}

// FindByNames resolves names to permissions. Names that do not exist are
// returned separately, in request order.
func (r *Repository) FindByNames(
	ctx context.Context,
	db core.DBTX,
	names []string,
) ([]Permission, []string, error) {
	if len(names) == 0 {
		return []Permission{}, nil, nil
	}

	q, args, err := sqlx.In(`
		SELECT id, name, label, "group", created_at, updated_at
		FROM permissions
		WHERE name IN (?)
		ORDER BY name`, names)
	if err != nil {
		return nil, nil, fmt.Errorf("build permission names query: %w", err)
	}

	var found []Permission
	if err := db.SelectContext(ctx, &found, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, nil, fmt.Errorf("find permissions by name: %w", err)
	}

	var missing []string
	for _, name := range names {
		known := slices.ContainsFunc(found, func(p Permission) bool {
			return p.Name == name
		})
		if !known && !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
	}

	return found, missing, nil
}

// SyncForUser makes names the exact set of permissions held by userID.
// Grants that already exist keep their original timestamps.
func (r *Repository) SyncForUser(
	ctx context.Context,
	userID int64,
	names []string,
) ([]Permission, error) {
	var granted []Permission

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		found, missing, err := r.FindByNames(ctx, tx, names)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return core.FieldError(
				"permissions",
				fmt.Sprintf("The selected permissions are invalid: %v.", missing),
			)
		}

		ids := make([]int64, 0, len(found))
		for _, p := range found {
			ids = append(ids, p.ID)
		}

		if err := detach(ctx, tx, userID, ids); err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO permission_user (user_id, permission_id, created_at, updated_at)
				VALUES ($1, $2, NOW(), NOW())
				ON CONFLICT (user_id, permission_id) DO NOTHING`,
				userID, id,
			); err != nil {
				return r.Wrap(ctx, "attach permission", err)
			}
		}

		granted = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return granted, nil
}

func detach(ctx context.Context, tx *sqlx.Tx, userID int64, keep []int64) error {
	if len(keep) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM permission_user WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("detach permissions: %w", err)
		}
		return nil
	}

	q, args, err := sqlx.In(
		`DELETE FROM permission_user WHERE user_id = ? AND permission_id NOT IN (?)`,
		userID,
		keep,
	)
	if err != nil {
		return fmt.Errorf("build detach query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return fmt.Errorf("detach permissions: %w", err)
	}

	return nil
}

// Upsert writes the catalogue keyed by name, refreshing label and group of
// permissions that already exist.
func (r *Repository) Upsert(ctx context.Context, seeds []Seed) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, s := range seeds {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO permissions (name, label, "group", created_at, updated_at)
				VALUES ($1, $2, $3, NOW(), NOW())
				ON CONFLICT (name) DO UPDATE
				SET label = EXCLUDED.label, "group" = EXCLUDED."group", updated_at = NOW()`,
				s.Name, s.Label, s.Group,
			); err != nil {
				return fmt.Errorf("upsert permission %s: %w", s.Name, err)
			}
		}
		return nil
	})
}
