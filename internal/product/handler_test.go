// AngelaMos | 2026
// handler_test.go

package product

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
)

var productColumns = []string{
	"id", "name", "slug", "description", "sku", "price", "stock",
	"is_active", "image", "created_at", "updated_at",
}

const existsSQL = `SELECT EXISTS(SELECT 1 FROM "products" WHERE "slug" = $1 AND "id" <> $2)`

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := NewHandler(NewService(NewRepository(sqlx.NewDb(db, "pgx"))), core.NewValidator())

	r := chi.NewRouter()
	r.Route("/v1", h.RegisterRoutes)

	return r, mock
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func productRow(id int64, name, price string, stock int, active bool) []driver.Value {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, name, Slugify(name), "A product", nil, price, stock, active, nil, now, now,
	}
}

func TestListProducts_SearchSortPaginate(t *testing.T) {
	h, mock := newTestRouter(t)

	search := `(CAST("products"."name" AS TEXT) ILIKE $1 OR CAST("products"."slug" AS TEXT) ILIKE $2 OR ` +
		`CAST("products"."description" AS TEXT) ILIKE $3 OR CAST("products"."sku" AS TEXT) ILIKE $4 OR ` +
		`CAST("products"."price" AS TEXT) ILIKE $5)`

	rows := sqlmock.NewRows(productColumns)
	for i := 0; i < 5; i++ {
		rows.AddRow(productRow(int64(i+1), fmt.Sprintf("Phone %d", i), fmt.Sprintf("%d.00", 900-i*100), 3, true)...)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "products" WHERE `+search)).
		WithArgs("%phone%", "%phone%", "%phone%", "%phone%", "%phone%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(search+` ORDER BY "products"."price" DESC LIMIT $6 OFFSET $7`)).
		WithArgs("%phone%", "%phone%", "%phone%", "%phone%", "%phone%", 5, 0).
		WillReturnRows(rows)

	rec, body := do(t, h, http.MethodGet,
		"/v1/products?search=phone&sort_by=price&sort_direction=desc&per_page=5&page=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Data retrieved successfully.", body["message"])
	assert.Nil(t, body["errors"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(12), meta["total"])
	assert.Equal(t, float64(3), meta["last_page"])
	assert.Equal(t, float64(5), meta["per_page"])
	assert.Equal(t, float64(1), meta["current_page"])

	data := body["data"].([]any)
	require.Len(t, data, 5)
	prev := decimal.NewFromInt(1 << 30)
	for _, item := range data {
		price := decimal.RequireFromString(item.(map[string]any)["price"].(string))
		assert.True(t, price.LessThanOrEqual(prev))
		prev = price
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_PriceAndStockHook(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM "products" WHERE "products"."is_active" = $1 AND "products"."price" >= $2 AND "products"."stock" > 0`,
	)).
		WithArgs(true, decimal.RequireFromString("10")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec, body := do(t, h, http.MethodGet,
		"/v1/products?filters[is_active]=yes&filters[stock]=many&min_price=10&max_price=lots&in_stock=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["last_page"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_GeneratesUniqueSlug(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsSQL)).
		WithArgs("cafe-creme", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsSQL)).
		WithArgs("cafe-creme-2", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products" ("name", "slug", "description", "sku", "price", "stock", "is_active", "image", "created_at", "updated_at")`)).
		WithArgs("Café Crème", "cafe-creme-2", "Rich", nil, decimal.RequireFromString("12.50"), 0, true, nil).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(1, "Café Crème", "12.50", 0, true)...))

	rec, body := do(t, h, http.MethodPost, "/v1/products",
		`{"name":"Café Crème","description":"Rich","price":"12.50"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "12.50", data["price"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, false, data["in_stock"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_Validation(t *testing.T) {
	h, mock := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/v1/products", `{"name":"Phone","price":-1,"stock":-3}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"The description field is required."}, errs["description"])
	assert.Equal(t, []any{"The price field must be at least 0."}, errs["price"])
	assert.Equal(t, []any{"The stock field must be at least 0."}, errs["stock"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_ZeroPriceIsAllowed(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsSQL)).
		WithArgs("freebie", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(2, "Freebie", "0.00", 1, true)...))

	rec, _ := do(t, h, http.MethodPost, "/v1/products", `{"name":"Freebie","description":"Free","price":0}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SET stock = stock + $1, updated_at = NOW()`)).
		WithArgs(-2, int64(1)).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(1, "Phone", "100.00", 3, true)...))

	rec, body := do(t, h, http.MethodPatch, "/v1/products/1/adjust-stock", `{"delta":-2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["data"].(map[string]any)["stock"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock_BelowZero(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SET stock = stock + $1`)).
		WithArgs(-10, int64(1)).
		WillReturnRows(sqlmock.NewRows(productColumns))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "products" WHERE "id" = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(1, "Phone", "100.00", 3, true)...))

	rec, body := do(t, h, http.MethodPatch, "/v1/products/1/adjust-stock", `{"delta":-10}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["errors"].(map[string]any), "delta")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock_MissingProduct(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SET stock = stock + $1`)).
		WillReturnRows(sqlmock.NewRows(productColumns))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "products" WHERE "id" = $1`)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	rec, body := do(t, h, http.MethodPatch, "/v1/products/77/adjust-stock", `{"delta":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found.", body["message"])
}

func TestAdjustStock_RequiresDelta(t *testing.T) {
	h, _ := newTestRouter(t)

	rec, body := do(t, h, http.MethodPatch, "/v1/products/1/adjust-stock", `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["errors"].(map[string]any), "delta")
}

func TestToggleActive(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SET is_active = NOT is_active`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(1, "Phone", "100.00", 3, false)...))

	rec, body := do(t, h, http.MethodPatch, "/v1/products/1/toggle-active", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deactivated successfully.", body["message"])
	assert.Equal(t, false, body["data"].(map[string]any)["is_active"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProduct_BlankSKUStoredAsNull(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsSQL)).
		WithArgs("widget", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WithArgs("Widget", "widget", "Plain", nil, decimal.RequireFromString("5"), 0, true, nil).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(3, "Widget", "5.00", 0, true)...))

	rec, _ := do(t, h, http.MethodPost, "/v1/products",
		`{"name":"Widget","description":"Plain","price":5,"sku":"   "}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_BlankSKUClearsColumn(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "products" SET "sku" = $1, "updated_at" = NOW() WHERE "id" = $2`)).
		WithArgs(nil, int64(1)).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(1, "Phone", "50.00", 3, true)...))

	rec, _ := do(t, h, http.MethodPatch, "/v1/products/1", `{"sku":""}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct_IsIdempotent(t *testing.T) {
	h, mock := newTestRouter(t)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "products" SET "price" = $1, "updated_at" = NOW() WHERE "id" = $2`)).
			WithArgs(decimal.RequireFromString("50"), int64(1)).
			WillReturnRows(sqlmock.NewRows(productColumns).AddRow(productRow(1, "Phone", "50.00", 3, true)...))
	}

	var bodies []map[string]any
	for i := 0; i < 2; i++ {
		rec, body := do(t, h, http.MethodPatch, "/v1/products/1", `{"price":50}`)
		require.Equal(t, http.StatusOK, rec.Code)
		bodies = append(bodies, body["data"].(map[string]any))
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}
