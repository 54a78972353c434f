// AngelaMos | 2026
// dto.go

package permission

import (
	"time"
)

type CreatePermissionRequest struct {
	Name  string  `json:"name"  validate:"required,max=255,dotted"`
	Label *string `json:"label" validate:"omitempty,max=255"`
	Group *string `json:"group" validate:"omitempty,max=255"`
}

type UpdatePermissionRequest struct {
	Name  *string `json:"name"  validate:"omitempty,max=255,dotted"`
	Label *string `json:"label" validate:"omitempty,max=255"`
	Group *string `json:"group" validate:"omitempty,max=255"`
}

// SyncRequest replaces the full set of permissions held by a user.
type SyncRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,required,dotted"`
}

type PermissionResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Label     *string           `json:"label"`
	Group     *string           `json:"group"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Users     *[]HolderResponse `json:"users,omitempty"`
}

type HolderResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToPermissionResponse(p *Permission) PermissionResponse {
	resp := PermissionResponse{
		ID:        p.ID,
		Name:      p.Name,
		Label:     p.Label,
		Group:     p.Group,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	if p.Users != nil {
		users := make([]HolderResponse, 0, len(*p.Users))
		for _, h := range *p.Users {
			users = append(users, HolderResponse{ID: h.ID, Name: h.Name, Email: h.Email})
		}
		resp.Users = &users
	}

	return resp
}

func ToPermissionResponseList(permissions []Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(permissions))
	for i := range permissions {
		responses = append(responses, ToPermissionResponse(&permissions[i]))
	}
	return responses
}
