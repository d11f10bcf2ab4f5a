package usecase

import (
	"context"
	"strings"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/repository"
)

type ProgramTypeUsecase interface {
	List(ctx context.Context) ([]catalog.ProgramType, error)
	Create(ctx context.Context, name string) (catalog.ProgramType, error)
	Update(ctx context.Context, id int64, name string) (catalog.ProgramType, error)
	Delete(ctx context.Context, id int64) error
}

type ProgramType struct {
	repo    repository.ProgramTypeRepository
	lookups *Lookups
}

func NewProgramTypeUsecase(repo repository.ProgramTypeRepository, lookups *Lookups) *ProgramType {
	return &ProgramType{repo: repo, lookups: lookups}
}

func (u *ProgramType) List(ctx context.Context) ([]catalog.ProgramType, error) {
	items, err := cachedList(ctx, u.lookups, LookupKey(FamilyProgramType), u.repo.List)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *ProgramType) Create(ctx context.Context, name string) (catalog.ProgramType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.ProgramType{}, ErrInvalidInput
	}
	created, err := u.repo.Create(ctx, name)
	if err != nil {
		return catalog.ProgramType{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgramType)
	return created, nil
}

func (u *ProgramType) Update(ctx context.Context, id int64, name string) (catalog.ProgramType, error) {
	name = strings.TrimSpace(name)
	if id <= 0 || name == "" {
		return catalog.ProgramType{}, ErrInvalidInput
	}
	updated, err := u.repo.Update(ctx, catalog.ProgramType{ID: id, Name: name})
	if err != nil {
		return catalog.ProgramType{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgramType, FamilyProgram)
	return updated, nil
}

func (u *ProgramType) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgramType)
	return nil
}
