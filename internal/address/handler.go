// AngelaMos | 2026
// handler.go

package address

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const resource = "Address"

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
	r.Route("/addresses", func(r chi.Router) {
		r.Get("/", h.ListAddresses)
		r.Post("/", h.CreateAddress)
		r.Get("/{address}", h.GetAddress)
		r.Put("/{address}", h.UpdateAddress)
		r.Patch("/{address}", h.UpdateAddress)
		r.Delete("/{address}", h.DeleteAddress)
	})
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), query.ParseParams(r.URL.Query()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		"Data retrieved successfully.",
		ToAddressResponseList(page.Items),
		page.Meta(),
	)
}

func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "address")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Address retrieved successfully.", ToAddressResponse(a))
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req CreateAddressRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "Address created successfully.", ToAddressResponse(a))
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "address")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	var req UpdateAddressRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	a, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Address updated successfully.", ToAddressResponse(a))
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "address")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Address deleted successfully.", nil)
}
