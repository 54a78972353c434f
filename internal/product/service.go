// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

const maxSlugAttempts = 50

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(
	ctx context.Context,
	p query.Params,
) (*query.Page[Product], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Find(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateProductRequest,
) (*Product, error) {
	slug, err := s.slugFor(ctx, req.Name, req.Slug, 0)
	if err != nil {
		return nil, err
	}

	sku := normalizeSKU(req.SKU)
	if sku != nil {
		if err := s.ensureFree(ctx, ColumnSKU, *sku, 0); err != nil {
			return nil, err
		}
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var v crud.Values
	v.Set(ColumnName, req.Name)
	v.Set(ColumnSlug, slug)
	v.Set(ColumnDescription, req.Description)
	v.Set(ColumnSKU, sku)
	v.Set(ColumnPrice, *req.Price)
	v.Set(ColumnStock, stock)
	v.Set(ColumnIsActive, isActive)
	v.Set(ColumnImage, req.Image)

	p, err := s.repo.Create(ctx, v)
	return p, duplicateField(err)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateProductRequest,
) (*Product, error) {
	var v crud.Values

	if req.Name != nil {
		v.Set(ColumnName, *req.Name)
	}
	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return nil, core.FieldError("slug", "The slug field must contain letters or digits.")
		}
		if err := s.ensureFree(ctx, ColumnSlug, slug, id); err != nil {
			return nil, err
		}
		v.Set(ColumnSlug, slug)
	}
	if req.Description != nil {
		v.Set(ColumnDescription, *req.Description)
	}
	if req.SKU != nil {
		// A blank sku clears the column.
		sku := normalizeSKU(req.SKU)
		if sku != nil {
			if err := s.ensureFree(ctx, ColumnSKU, *sku, id); err != nil {
				return nil, err
			}
		}
		v.Set(ColumnSKU, sku)
	}
	if req.Price != nil {
		v.Set(ColumnPrice, *req.Price)
	}
	if req.Stock != nil {
		v.Set(ColumnStock, *req.Stock)
	}
	if req.IsActive != nil {
		v.Set(ColumnIsActive, *req.IsActive)
	}
	if req.Image != nil {
		v.Set(ColumnImage, *req.Image)
	}

	p, err := s.repo.Update(ctx, id, v)
	return p, duplicateField(err)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (*Product, error) {
	return s.repo.ToggleActive(ctx, id)
}

func (s *Service) AdjustStock(
	ctx context.Context,
	id int64,
	delta int,
) (*Product, error) {
	p, err := s.repo.AdjustStock(ctx, id, delta)
	if errors.Is(err, core.ErrInvalidInput) {
		return nil, core.FieldError("delta", "The delta field would make the stock negative.")
	}
	return p, err
}

// slugFor returns the requested slug, or one derived from name with a
// numeric suffix added until it is unused.
func (s *Service) slugFor(
	ctx context.Context,
	name string,
	requested *string,
	exceptID int64,
) (string, error) {
	if requested != nil {
		if slug := Slugify(*requested); slug != "" {
			return slug, s.ensureFree(ctx, ColumnSlug, slug, exceptID)
		}
	}

	base := Slugify(name)
	if base == "" {
		base = "product"
	}

	candidate := base
	for n := 2; n <= maxSlugAttempts+1; n++ {
		taken, err := s.repo.Exists(ctx, ColumnSlug, candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}

	return "", core.DuplicateError("slug")
}

func (s *Service) ensureFree(
	ctx context.Context,
	c query.Column,
	value string,
	exceptID int64,
) error {
	taken, err := s.repo.Exists(ctx, c, value, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return core.DuplicateError(string(c))
	}
	return nil
}

// normalizeSKU trims sku and maps a blank one to nil, stored as NULL.
func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*sku)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// duplicateField maps a unique violation that slipped past the pre-checks
// onto the column named by its constraint.
func duplicateField(err error) error {
	if !errors.Is(err, core.ErrDuplicateKey) {
		return err
	}
	if strings.Contains(crud.ConstraintName(err), "sku") {
		return core.DuplicateError("sku")
	}
	return core.DuplicateError("slug")
}
