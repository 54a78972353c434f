// AngelaMos | 2026
// service.go

package permission

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
) (*query.Page[Permission], error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Permission, error) {
	return s.repo.Find(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	req CreatePermissionRequest,
) (*Permission, error) {
	if err := s.ensureNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	var v crud.Values
	v.Set(ColumnName, req.Name)
	v.Set(ColumnLabel, req.Label)
	v.Set(ColumnGroup, req.Group)

	p, err := s.repo.Create(ctx, v)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.DuplicateError("name")
	}
	return p, err
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdatePermissionRequest,
) (*Permission, error) {
	var v crud.Values
	if req.Name != nil {
		if err := s.ensureNameFree(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		v.Set(ColumnName, *req.Name)
	}
	if req.Label != nil {
		v.Set(ColumnLabel, *req.Label)
	}
	if req.Group != nil {
		v.Set(ColumnGroup, *req.Group)
	}

	p, err := s.repo.Update(ctx, id, v)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.DuplicateError("name")
	}
	return p, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ForUsers groups the permissions of each user by user id.
func (s *Service) ForUsers(
	ctx context.Context,
	userIDs []int64,
) (map[int64][]Permission, error) {
	grants, err := s.repo.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64][]Permission, len(userIDs))
	for _, g := range grants {
		byUser[g.UserID] = append(byUser[g.UserID], g.Permission)
	}

	return byUser, nil
}

func (s *Service) Sync(
	ctx context.Context,
	userID int64,
	names []string,
) ([]Permission, error) {
	return s.repo.SyncForUser(ctx, userID, names)
}

func (s *Service) Seed(ctx context.Context, seeds []Seed) error {
	return s.repo.Upsert(ctx, seeds)
}

func (s *Service) ensureNameFree(
	ctx context.Context,
	name string,
	exceptID int64,
) error {
	taken, err := s.repo.Exists(ctx, ColumnName, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return core.DuplicateError("name")
	}
	return nil
}
