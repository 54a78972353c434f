// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/templates/go-crud-api/internal/address"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// UpdateUserRequest keeps Password a plain string so that "" reads as
// absent.
type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password string  `json:"password" validate:"omitempty,min=6,max=128"`
}

type UserResponse struct {
	ID          int64                            `json:"id"`
	Name        string                           `json:"name"`
	Email       string                           `json:"email"`
	CreatedAt   time.Time                        `json:"created_at"`
	UpdatedAt   time.Time                        `json:"updated_at"`
	Addresses   *[]address.AddressResponse       `json:"addresses,omitempty"`
	Permissions *[]permission.PermissionResponse `json:"permissions,omitempty"`
}

func ToUserResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if u.Addresses != nil {
		addresses := address.ToAddressResponseList(*u.Addresses)
		resp.Addresses = &addresses
	}
	if u.Permissions != nil {
		permissions := permission.ToPermissionResponseList(*u.Permissions)
		resp.Permissions = &permissions
	}

	return resp
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
