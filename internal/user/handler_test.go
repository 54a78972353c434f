// AngelaMos | 2026
// handler_test.go

package user

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/go-crud-api/internal/address"
	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
)

const (
	userReturning = `"id", "name", "email", "created_at", "updated_at"`
	findUserSQL   = `SELECT ` + userReturning + ` FROM "users" WHERE "id" = $1`
	emailTakenSQL = `SELECT EXISTS(SELECT 1 FROM "users" WHERE "email" = $1 AND "id" <> $2)`
)

var (
	userColumns       = []string{"id", "name", "email", "created_at", "updated_at"}
	addressColumns    = []string{"id", "user_id", "label", "street", "barangay", "city", "province", "postal_code", "country", "is_default", "created_at", "updated_at"}
	grantColumns      = []string{"user_id", "id", "name", "label", "group", "created_at", "updated_at"}
	permissionColumns = []string{"id", "name", "label", "group", "created_at", "updated_at"}
	fixedTime         = time.Date(2026, 2, 23, 5, 29, 19, 0, time.UTC)
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "pgx")
	addresses := address.NewRepository(sqlxDB)
	permissions := permission.NewRepository(sqlxDB)

	repo := NewRepository(sqlxDB, addresses, permissions)
	svc := NewService(repo, permission.NewService(permissions))
	h := NewHandler(svc, core.NewValidator())

	r := chi.NewRouter()
	r.Route("/v1", h.RegisterRoutes)

	return r, mock
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func userRows(id int64, name, email string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(id, name, email, fixedTime, fixedTime)
}

// passwordHash matches an argon2 hash of plain and rejects anything else,
// including plain itself.
type passwordHash struct {
	plain string
}

func (p passwordHash) Match(v driver.Value) bool {
	encoded, ok := v.(string)
	if !ok || encoded == p.plain {
		return false
	}
	valid, err := core.VerifyPassword(p.plain, encoded)
	return err == nil && valid
}

func TestCreateUser_HashesPasswordAndHidesIt(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(emailTakenSQL)).
		WithArgs("john@example.com", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users" ("name", "email", "password", "created_at", "updated_at")`)).
		WithArgs("John", "john@example.com", passwordHash{plain: "secret1"}).
		WillReturnRows(userRows(1, "John", "john@example.com"))

	rec, body := do(t, h, http.MethodPost, "/v1/users",
		`{"name":"John","email":"John@Example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User created successfully.", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "john@example.com", data["email"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "addresses")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmailNeverInserts(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(emailTakenSQL)).
		WithArgs("a@x.com", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	rec, body := do(t, h, http.MethodPost, "/v1/users",
		`{"name":"A","email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{"The email has already been taken."}, errs["email"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Validation(t *testing.T) {
	h, mock := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/v1/users", `{"email":"nope","password":"123"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_LoadsRelations(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(findUserSQL)).
		WithArgs(int64(1)).
		WillReturnRows(userRows(1, "John", "john@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM addresses WHERE user_id IN ($1) ORDER BY is_default DESC, id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(addressColumns).AddRow(
			int64(4), int64(1), "Home", "1 Rizal St", "Poblacion", "Makati", "Metro Manila", "1200",
			"Philippines", true, fixedTime, fixedTime,
		))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE pu.user_id IN ($1)`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(grantColumns))

	rec, body := do(t, h, http.MethodGet, "/v1/users/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User retrieved successfully.", body["message"])
	data := body["data"].(map[string]any)
	assert.NotContains(t, data, "password")
	addresses := data["addresses"].([]any)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Makati", addresses[0].(map[string]any)["city"])
	assert.Equal(t, []any{}, data["permissions"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NonNumericIDIsNotFound(t *testing.T) {
	h, mock := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/v1/users/abc", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_Missing(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "id" = $1`)).
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec, body := do(t, h, http.MethodDelete, "/v1/users/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User not found.", body["message"])
	assert.Nil(t, body["data"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "id" = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, body := do(t, h, http.MethodDelete, "/v1/users/2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User deleted successfully.", body["message"])
	assert.Nil(t, body["data"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_PasswordIsRehashed(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "users" SET "password" = $1, "updated_at" = NOW() WHERE "id" = $2`)).
		WithArgs(passwordHash{plain: "newpass"}, int64(1)).
		WillReturnRows(userRows(1, "John", "john@example.com"))

	rec, body := do(t, h, http.MethodPatch, "/v1/users/1", `{"password":"newpass"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated successfully.", body["message"])
	assert.NotContains(t, body["data"].(map[string]any), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmptyPasswordIsIgnored(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "users" SET "name" = $1, "updated_at" = NOW() WHERE "id" = $2`)).
		WithArgs("Johnny", int64(1)).
		WillReturnRows(userRows(1, "Johnny", "john@example.com"))

	rec, _ := do(t, h, http.MethodPut, "/v1/users/1", `{"name":"Johnny","password":""}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_SameEmailIsIdempotent(t *testing.T) {
	h, mock := newTestRouter(t)

	for range 2 {
		mock.ExpectQuery(regexp.QuoteMeta(emailTakenSQL)).
			WithArgs("john@example.com", int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "users" SET "email" = $1`)).
			WithArgs("john@example.com", int64(1)).
			WillReturnRows(userRows(1, "John", "john@example.com"))
	}

	first, firstBody := do(t, h, http.MethodPatch, "/v1/users/1", `{"email":"john@example.com"}`)
	second, secondBody := do(t, h, http.MethodPatch, "/v1/users/1", `{"email":"john@example.com"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, firstBody["data"], secondBody["data"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmailTakenByAnother(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(emailTakenSQL)).
		WithArgs("jane@example.com", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	rec, body := do(t, h, http.MethodPatch, "/v1/users/1", `{"email":"jane@example.com"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["errors"].(map[string]any), "email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_HookAndNoInclude(t *testing.T) {
	h, mock := newTestRouter(t)

	where := ` WHERE "users"."created_at" >= $1 AND "users"."created_at" < $2` +
		` AND EXISTS (SELECT 1 FROM permission_user pu JOIN permissions p ON p.id = pu.permission_id` +
		` WHERE pu.user_id = "users"."id" AND p.name = $3)`

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "users"`+where)).
		WithArgs(from, to, "products.view").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users"`+where+` ORDER BY "users"."name" ASC LIMIT $4 OFFSET $5`)).
		WithArgs(from, to, "products.view", 10, 0).
		WillReturnRows(userRows(1, "John", "john@example.com"))

	rec, body := do(t, h, http.MethodGet,
		"/v1/users?created_from=2026-01-01&created_to=2026-01-31&permission=products.view&sort_by=name&no_include=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Data retrieved successfully.", body["message"])
	items := body["data"].([]any)
	require.Len(t, items, 1)
	assert.NotContains(t, items[0].(map[string]any), "addresses")
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["total"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_SortByPasswordIsIgnored(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec, body := do(t, h, http.MethodGet, "/v1/users?sort_by=password&no_include=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["data"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUserPermissions(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(findUserSQL)).
		WithArgs(int64(1)).
		WillReturnRows(userRows(1, "John", "john@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE pu.user_id IN ($1)`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(grantColumns).
			AddRow(int64(1), int64(3), "products.view", "View Products", "products", fixedTime, fixedTime))

	rec, body := do(t, h, http.MethodGet, "/v1/users/1/permissions", "")

	require.Equal(t, http.StatusOK, rec.Code)
	items := body["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "products.view", items[0].(map[string]any)["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncUserPermissions(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(findUserSQL)).
		WithArgs(int64(1)).
		WillReturnRows(userRows(1, "John", "john@example.com"))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE name IN ($1)`)).
		WithArgs("products.view").
		WillReturnRows(sqlmock.NewRows(permissionColumns).
			AddRow(int64(3), "products.view", "View Products", "products", fixedTime, fixedTime))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_user WHERE user_id = $1 AND permission_id NOT IN ($2)`)).
		WithArgs(int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO permission_user`)).
		WithArgs(int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, body := do(t, h, http.MethodPut, "/v1/users/1/permissions", `{"permissions":["products.view"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User permissions updated successfully.", body["message"])
	assert.Len(t, body["data"].([]any), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncUserPermissions_MissingUser(t *testing.T) {
	h, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(findUserSQL)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	rec, _ := do(t, h, http.MethodPut, "/v1/users/9/permissions", `{"permissions":["products.view"]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
