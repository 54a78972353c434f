// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/templates/go-crud-api/internal/address"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
)

// User never carries its password hash: the column is written on create and
// update but excluded from every SELECT and RETURNING list.
type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Relations stay nil until loaded.
	Addresses   *[]address.Address       `db:"-"`
	Permissions *[]permission.Permission `db:"-"`
}
