// AngelaMos | 2026
// entity.go

package permission

import (
	"time"
)

type Permission struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Label     *string   `db:"label"`
	Group     *string   `db:"group"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Users is nil until the users relation is loaded.
	Users *[]Holder `db:"-"`
}

// Holder is a user that has been granted a permission.
type Holder struct {
	PermissionID int64  `db:"permission_id"`
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
}

// Grant is a permission as seen from one of its users.
type Grant struct {
	UserID int64 `db:"user_id"`
	Permission
}

// Default is the catalogue written by the seeder.
var Default = []Seed{
	{Name: "products.view", Label: "View Products", Group: "products"},
	{Name: "products.create", Label: "Create Products", Group: "products"},
	{Name: "products.update", Label: "Update Products", Group: "products"},
	{Name: "products.delete", Label: "Delete Products", Group: "products"},
}

type Seed struct {
	Name  string
	Label string
	Group string
}
