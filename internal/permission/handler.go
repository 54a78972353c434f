// AngelaMos | 2026
// handler.go

package permission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const resource = "Permission"

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
	r.Route("/permissions", func(r chi.Router) {
		r.Get("/", h.ListPermissions)
		r.Post("/", h.CreatePermission)
		r.Get("/{permission}", h.GetPermission)
		r.Put("/{permission}", h.UpdatePermission)
		r.Patch("/{permission}", h.UpdatePermission)
		r.Delete("/{permission}", h.DeletePermission)
	})
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), query.ParseParams(r.URL.Query()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		"Data retrieved successfully.",
		ToPermissionResponseList(page.Items),
		page.Meta(),
	)
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "permission")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Permission retrieved successfully.", ToPermissionResponse(p))
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req CreatePermissionRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "Permission created successfully.", ToPermissionResponse(p))
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "permission")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	var req UpdatePermissionRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Permission updated successfully.", ToPermissionResponse(p))
}

func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "permission")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Permission deleted successfully.", nil)
}
