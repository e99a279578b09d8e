package service

import (
	"context"
	"strings"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/rs/zerolog/log"
)

// lookupCRUD implements list/create/update/delete for one flat name/code
// table. fields exposes the Name and Code of a row so the generic code can
// read and assign them.
type lookupCRUD[T repository.Lookup, R any] struct {
	entity string // singular, used in error messages
	repo   repository.LookupRepository[T]
	cache  *infra.Cache // dashboard cache, bumped on writes
	fields func(*T) (name, code *string)
	toResp func(T) R
}

// list always reads the table; dimension lists are not cached.
func (l *lookupCRUD[T, R]) list(ctx context.Context) ([]R, error) {
	rows, err := l.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]R, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, l.toResp(row))
	}
	return resp, nil
}

func (l *lookupCRUD[T, R]) create(ctx context.Context, req dto.CreateLookupRequest) (*R, error) {
	name, code, err := cleanNameCode(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	var row T
	n, c := l.fields(&row)
	*n, *c = name, code
	if err := l.repo.Create(ctx, &row); err != nil {
		return nil, apierror.FromDB(l.entity, err)
	}
	invalidate(ctx, l.cache)
	resp := l.toResp(row)
	return &resp, nil
}

func (l *lookupCRUD[T, R]) update(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*R, error) {
	row, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromDB(l.entity, err)
	}
	n, c := l.fields(row)
	if err := applyNameCode(n, c, req.Name, req.Code); err != nil {
		return nil, err
	}
	if err := l.repo.Update(ctx, row); err != nil {
		return nil, apierror.FromDB(l.entity, err)
	}
	invalidate(ctx, l.cache)
	resp := l.toResp(*row)
	return &resp, nil
}

func (l *lookupCRUD[T, R]) delete(ctx context.Context, id int64) error {
	if err := l.repo.Delete(ctx, id); err != nil {
		return apierror.FromDB(l.entity, err)
	}
	invalidate(ctx, l.cache)
	return nil
}

// cleanNameCode trims both values and rejects blanks.
func cleanNameCode(name, code string) (string, string, error) {
	name, code = strings.TrimSpace(name), strings.TrimSpace(code)
	if name == "" {
		return "", "", apierror.Invalid("name is required")
	}
	if code == "" {
		return "", "", apierror.Invalid("code is required")
	}
	return name, code, nil
}

// applyNameCode copies the non-nil request values onto the row fields.
func applyNameCode(name, code *string, newName, newCode *string) error {
	if newName != nil {
		v := strings.TrimSpace(*newName)
		if v == "" {
			return apierror.Invalid("name cannot be blank")
		}
		*name = v
	}
	if newCode != nil {
		v := strings.TrimSpace(*newCode)
		if v == "" {
			return apierror.Invalid("code cannot be blank")
		}
		*code = v
	}
	return nil
}

// invalidate bumps the dashboard cache version after a write. Failures are logged, not returned.
func invalidate(ctx context.Context, cache *infra.Cache) {
	if err := cache.Bump(ctx); err != nil {
		log.Warn().Err(err).Msg("cache: version bump failed")
	}
}
