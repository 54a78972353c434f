// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,max=255"`
	Slug        *string          `json:"slug"        validate:"omitempty,max=255"`
	Description string           `json:"description" validate:"required"`
	SKU         *string          `json:"sku"         validate:"omitempty,max=64"`
	Price       *decimal.Decimal `json:"price"       validate:"required,nonnegative"`
	Stock       *int             `json:"stock"       validate:"omitempty,nonnegative"`
	IsActive    *bool            `json:"is_active"`
	Image       *string          `json:"image"       validate:"omitempty,url,max=2048"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=255"`
	Slug        *string          `json:"slug"        validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	SKU         *string          `json:"sku"         validate:"omitempty,max=64"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,nonnegative"`
	Stock       *int             `json:"stock"       validate:"omitempty,nonnegative"`
	IsActive    *bool            `json:"is_active"`
	Image       *string          `json:"image"       validate:"omitempty,url,max=2048"`
}

type AdjustStockRequest struct {
	Delta *int `json:"delta" validate:"required"`
}

type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	SKU         *string   `json:"sku"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	InStock     bool      `json:"in_stock"`
	IsActive    bool      `json:"is_active"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		InStock:     p.InStock(),
		IsActive:    p.IsActive,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
