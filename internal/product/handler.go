// AngelaMos | 2026
// handler.go

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const resource = "Product"

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
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)

		r.Route("/{product}", func(r chi.Router) {
			r.Get("/", h.GetProduct)
			r.Put("/", h.UpdateProduct)
			r.Patch("/", h.UpdateProduct)
			r.Delete("/", h.DeleteProduct)
			r.Patch("/toggle-active", h.ToggleActive)
			r.Patch("/adjust-stock", h.AdjustStock)
		})
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), query.ParseParams(r.URL.Query()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		"Data retrieved successfully.",
		ToProductResponseList(page.Items),
		page.Meta(),
	)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "product")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Product retrieved successfully.", ToProductResponse(p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "Product created successfully.", ToProductResponse(p))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "product")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	var req UpdateProductRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Product updated successfully.", ToProductResponse(p))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "product")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Product deleted successfully.", nil)
}

func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "product")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	p, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	message := "Product deactivated successfully."
	if p.IsActive {
		message = "Product activated successfully."
	}

	core.OK(w, message, ToProductResponse(p))
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(r, "product")
	if !ok {
		core.NotFound(w, resource)
		return
	}

	var req AdjustStockRequest
	if err := core.Bind(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.AdjustStock(r.Context(), id, *req.Delta)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Product stock adjusted successfully.", ToProductResponse(p))
}
