// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const (
	ColumnName        query.Column = "name"
	ColumnSlug        query.Column = "slug"
	ColumnDescription query.Column = "description"
	ColumnSKU         query.Column = "sku"
	ColumnPrice       query.Column = "price"
	ColumnStock       query.Column = "stock"
	ColumnIsActive    query.Column = "is_active"
	ColumnImage       query.Column = "image"
)

var schema = crud.Schema{
	Resource: "Product",
	Table:    "products",
	Columns: []query.Column{
		"id",
		ColumnName,
		ColumnSlug,
		ColumnDescription,
		ColumnSKU,
		ColumnPrice,
		ColumnStock,
		ColumnIsActive,
		ColumnImage,
		query.CreatedAt,
		"updated_at",
	},
}

var listOptions = query.Options[Product]{
	Searchable: []query.Column{
		ColumnName,
		ColumnSlug,
		ColumnDescription,
		ColumnSKU,
		ColumnPrice,
	},
	Sortable: []query.Column{
		ColumnName,
		ColumnSlug,
		ColumnDescription,
		ColumnSKU,
		ColumnPrice,
		ColumnStock,
	},
	Filterable: []query.Filter{
		{Column: ColumnName, Kind: query.KindText},
		{Column: ColumnSlug, Kind: query.KindText},
		{Column: ColumnDescription, Kind: query.KindText},
		{Column: ColumnSKU, Kind: query.KindText},
		{Column: ColumnPrice, Kind: query.KindDecimal},
		{Column: ColumnStock, Kind: query.KindInt},
		{Column: ColumnIsActive, Kind: query.KindBool},
	},
	Hook: priceStockHook,
}

type Repository struct {
	*crud.Repository[Product]
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{Repository: crud.New[Product](db, schema)}
}

func (r *Repository) List(
	ctx context.Context,
	p query.Params,
) (*query.Page[Product], error) {
	return r.Repository.List(ctx, p, listOptions)
}

// priceStockHook applies the min_price, max_price and in_stock parameters.
// Bounds that do not parse as decimals are ignored.
func priceStockHook(b *query.Builder, p query.Params) {
	if lo, err := decimal.NewFromString(strings.TrimSpace(p.Values.Get("min_price"))); err == nil {
		b.Where(b.Ident(ColumnPrice)+" >= ?", lo)
	}
	if hi, err := decimal.NewFromString(strings.TrimSpace(p.Values.Get("max_price"))); err == nil {
		b.Where(b.Ident(ColumnPrice)+" <= ?", hi)
	}
	if query.BoolValue(p.Values.Get("in_stock")) {
		b.Where(b.Ident(ColumnStock) + " > 0")
	}
}

func (r *Repository) ToggleActive(ctx context.Context, id int64) (*Product, error) {
	q := fmt.Sprintf(`
		UPDATE products
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.Returning())

	var p Product
	if err := r.DB().GetContext(ctx, &p, q, id); err != nil {
		return nil, r.Wrap(ctx, "toggle active", err)
	}

	return &p, nil
}

// AdjustStock adds delta to the stock in one statement. It reports
// ErrInvalidInput when the result would drop below zero.
func (r *Repository) AdjustStock(
	ctx context.Context,
	id int64,
	delta int,
) (*Product, error) {
	q := fmt.Sprintf(`
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND stock + $1 >= 0
		RETURNING %s`, r.Returning())

	var p Product
	err := r.DB().GetContext(ctx, &p, q, delta, id)
	if err == nil {
		return &p, nil
	}

	wrapped := r.Wrap(ctx, "adjust stock", err)
	if !core.IsAppError(wrapped) {
		return nil, wrapped
	}

	// No row matched: either the product is gone or the stock is too low.
	if _, findErr := r.Find(ctx, id); findErr != nil {
		return nil, findErr
	}

	return nil, fmt.Errorf("adjust stock %d by %d: %w", id, delta, core.ErrInvalidInput)
}
