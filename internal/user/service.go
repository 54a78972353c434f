// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"strings"

	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/crud"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
	"github.com/carterperez-dev/templates/go-crud-api/internal/query"
)

type Service struct {
	repo        *Repository
	permissions *permission.Service
}

func NewService(repo *Repository, permissions *permission.Service) *Service {
	return &Service{repo: repo, permissions: permissions}
}

func (s *Service) ListUsers(
	ctx context.Context,
	p query.Params,
) (*query.Page[User], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindWithRelations(ctx, id)
}

func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	var v crud.Values
	v.Set(ColumnName, req.Name)
	v.Set(ColumnEmail, email)
	v.Set(ColumnPassword, req.Password)

	u, err := s.repo.Create(ctx, v)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.DuplicateError("email")
	}
	return u, err
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	var v crud.Values

	if req.Name != nil {
		v.Set(ColumnName, *req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		v.Set(ColumnEmail, email)
	}
	if req.Password != "" {
		v.Set(ColumnPassword, req.Password)
	}

	u, err := s.repo.Update(ctx, id, v)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.DuplicateError("email")
	}
	return u, err
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPermissions(
	ctx context.Context,
	id int64,
) ([]permission.Permission, error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return nil, err
	}

	byUser, err := s.permissions.ForUsers(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	if held := byUser[id]; held != nil {
		return held, nil
	}
	return []permission.Permission{}, nil
}

func (s *Service) SyncPermissions(
	ctx context.Context,
	id int64,
	names []string,
) ([]permission.Permission, error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return nil, err
	}

	return s.permissions.Sync(ctx, id, names)
}

func (s *Service) ensureEmailFree(
	ctx context.Context,
	email string,
	exceptID int64,
) error {
	taken, err := s.repo.Exists(ctx, ColumnEmail, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return core.DuplicateError("email")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
