// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const resource = "User"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, v *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: v,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)

		r.Route("/{user}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.UpdateUser)
			r.Patch("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)
			r.Get("/permissions", h.ListPermissions)
			r.Put("/permissions", h.SyncPermissions)
		})
	})
}

// ListUsers runs the list pipeline; addresses and permissions are included
// unless no_include is set.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListUsers(r.Context(), query.ParseParams(r.URL.Query()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		"Data retrieved successfully.",
		ToUserResponseList(page.Items),
		page.Meta(),
	)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "user")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "User retrieved successfully.", ToUserResponse(u))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	u, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "User created successfully.", ToUserResponse(u))
}

// UpdateUser serves both PUT and PATCH; only fields present in the body
// change.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "user")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	var req UpdateUserRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	u, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "User updated successfully.", ToUserResponse(u))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "user")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "User deleted successfully.", nil)
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "user")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	held, err := h.service.ListPermissions(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(
		w,
		"User permissions retrieved successfully.",
		permission.ToPermissionResponseList(held),
	)
}

// SyncPermissions replaces the user's permissions with the named set.
func (h *Handler) SyncPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "user")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	var req permission.SyncRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	held, err := h.service.SyncPermissions(r.Context(), id, req.Permissions)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(
		w,
		"User permissions updated successfully.",
		permission.ToPermissionResponseList(held),
	)
}
