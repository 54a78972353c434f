// AngelaMos | 2026
// dto.go

package address

import (
	"time"
)

type CreateAddressRequest struct {
	UserID     int64   `json:"user_id"     validate:"required,gt=0"`
	Label      string  `json:"label"       validate:"required,max=255"`
	Street     string  `json:"street"      validate:"required,max=255"`
	Barangay   string  `json:"barangay"    validate:"required,max=255"`
	City       string  `json:"city"        validate:"required,max=255"`
	Province   string  `json:"province"    validate:"required,max=255"`
	PostalCode string  `json:"postal_code" validate:"required,max=20"`
	Country    *string `json:"country"     validate:"omitempty,min=1,max=255"`
	IsDefault  *bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	UserID     *int64  `json:"user_id"     validate:"omitempty,gt=0"`
	Label      *string `json:"label"       validate:"omitempty,min=1,max=255"`
	Street     *string `json:"street"      validate:"omitempty,min=1,max=255"`
	Barangay   *string `json:"barangay"    validate:"omitempty,min=1,max=255"`
	City       *string `json:"city"        validate:"omitempty,min=1,max=255"`
	Province   *string `json:"province"    validate:"omitempty,min=1,max=255"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=1,max=20"`
	Country    *string `json:"country"     validate:"omitempty,min=1,max=255"`
	IsDefault  *bool   `json:"is_default"`
}

type AddressResponse struct {
	ID         int64          `json:"id"`
	UserID     int64          `json:"user_id"`
	Label      string         `json:"label"`
	Street     string         `json:"street"`
	Barangay   string         `json:"barangay"`
	City       string         `json:"city"`
	Province   string         `json:"province"`
	PostalCode string         `json:"postal_code"`
	Country    string         `json:"country"`
	IsDefault  bool           `json:"is_default"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	User       *OwnerResponse `json:"user,omitempty"`
}

type OwnerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToAddressResponse(a *Address) AddressResponse {
	resp := AddressResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Label:      a.Label,
		Street:     a.Street,
		Barangay:   a.Barangay,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}

	if a.User != nil {
		resp.User = &OwnerResponse{
			ID:    a.User.ID,
			Name:  a.User.Name,
			Email: a.User.Email,
		}
	}

	return resp
}

func ToAddressResponseList(addresses []Address) []AddressResponse {
	responses := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, ToAddressResponse(&addresses[i]))
	}
	return responses
}
