// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
)

// RecordCounts is the number of rows held by each resource table.
type RecordCounts struct {
	Users       int64 `db:"users"       json:"users"`
	Products    int64 `db:"products"    json:"products"`
	Addresses   int64 `db:"addresses"   json:"addresses"`
	Permissions int64 `db:"permissions" json:"permissions"`
}

type Repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Counts(ctx context.Context) (*RecordCounts, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users)       AS users,
			(SELECT COUNT(*) FROM products)    AS products,
			(SELECT COUNT(*) FROM addresses)   AS addresses,
			(SELECT COUNT(*) FROM permissions) AS permissions`

	var counts RecordCounts
	if err := r.db.GetContext(ctx, &counts, q); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	return &counts, nil
}
