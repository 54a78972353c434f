// AngelaMos | 2026
// entity.go

package address

import (
	"time"
)

// DefaultCountry is stored when an address is created without a country.
const DefaultCountry = "Philippines"

type Address struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Label      string    `db:"label"`
	Street     string    `db:"street"`
	Barangay   string    `db:"barangay"`
	City       string    `db:"city"`
	Province   string    `db:"province"`
	PostalCode string    `db:"postal_code"`
	Country    string    `db:"country"`
	IsDefault  bool      `db:"is_default"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`

	// User is nil until the user relation is loaded.
	User *Owner `db:"-"`
}

// Owner is the user an address belongs to.
type Owner struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}
