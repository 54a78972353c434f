// AngelaMos | 2026
// service.go

package address

import (
	"context"
	"errors"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(
	ctx context.Context,
	p query.Params,
) (*query.Page[Address], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Address, error) {
	return s.repo.Find(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateAddressRequest,
) (*Address, error) {
	country := DefaultCountry
	if req.Country != nil {
		country = *req.Country
	}

	isDefault := false
	if req.IsDefault != nil {
		isDefault = *req.IsDefault
	}

	var v crud.Values
	v.Set(ColumnUserID, req.UserID)
	v.Set(ColumnLabel, req.Label)
	v.Set(ColumnStreet, req.Street)
	v.Set(ColumnBarangay, req.Barangay)
	v.Set(ColumnCity, req.City)
	v.Set(ColumnProvince, req.Province)
	v.Set(ColumnPostalCode, req.PostalCode)
	v.Set(ColumnCountry, country)
	v.Set(ColumnIsDefault, isDefault)

	a, err := s.repo.Create(ctx, v)
	return a, ownerError(err)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateAddressRequest,
) (*Address, error) {
	var v crud.Values
	if req.UserID != nil {
		v.Set(ColumnUserID, *req.UserID)
	}
	setString(&v, ColumnLabel, req.Label)
	setString(&v, ColumnStreet, req.Street)
	setString(&v, ColumnBarangay, req.Barangay)
	setString(&v, ColumnCity, req.City)
	setString(&v, ColumnProvince, req.Province)
	setString(&v, ColumnPostalCode, req.PostalCode)
	setString(&v, ColumnCountry, req.Country)
	if req.IsDefault != nil {
		v.Set(ColumnIsDefault, *req.IsDefault)
	}

	a, err := s.repo.Update(ctx, id, v)
	return a, ownerError(err)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func setString(v *crud.Values, c query.Column, value *string) {
	if value != nil {
		v.Set(c, *value)
	}
}

// ownerError reports a user_id that references no user as a validation
// failure on that field.
func ownerError(err error) error {
	if errors.Is(err, core.ErrForeignKey) {
		return core.FieldError("user_id", "The selected user id is invalid.")
	}
	return err
}
