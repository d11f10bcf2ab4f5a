package usecase

import (
	"context"
	"strings"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/repository"
)

type ProgramInput struct {
	Name           string
	TypeID         int64
	OrganizationID int64
	KKSIDs         []int64
}

type ProgramPatchInput struct {
	Name           *string
	TypeID         *int64
	OrganizationID *int64
}

type ProgramUsecase interface {
	List(ctx context.Context) ([]catalog.ProgramSummary, error)
	Details(ctx context.Context, id int64) (catalog.Program, error)
	Create(ctx context.Context, in ProgramInput) (catalog.Program, error)
	Update(ctx context.Context, id int64, in ProgramPatchInput) (catalog.Program, error)
	Delete(ctx context.Context, id int64) error
	SetPassport(ctx context.Context, id int64, kksIDs []int64) (catalog.Program, error)
}

type Program struct {
	repo    repository.ProgramRepository
	lookups *Lookups
}

func NewProgramUsecase(repo repository.ProgramRepository, lookups *Lookups) *Program {
	return &Program{repo: repo, lookups: lookups}
}

func (u *Program) List(ctx context.Context) ([]catalog.ProgramSummary, error) {
	items, err := cachedList(ctx, u.lookups, LookupKey(FamilyProgram), u.repo.List)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Program) Details(ctx context.Context, id int64) (catalog.Program, error) {
	if id <= 0 {
		return catalog.Program{}, ErrInvalidInput
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return catalog.Program{}, storeError(err)
	}
	return p, nil
}

// Create stores the program and, when criteria are given, its passport.
func (u *Program) Create(ctx context.Context, in ProgramInput) (catalog.Program, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.TypeID <= 0 || in.OrganizationID <= 0 {
		return catalog.Program{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, catalog.Program{Name: name, TypeID: in.TypeID, OrganizationID: in.OrganizationID})
	if err != nil {
		return catalog.Program{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgram)

	if ids := NormalizeCriterionIDs(in.KKSIDs); len(ids) > 0 {
		if err := u.repo.SetPassport(ctx, created.ID, ids); err != nil {
			return catalog.Program{}, storeError(err)
		}
	}
	return u.Details(ctx, created.ID)
}

func (u *Program) Update(ctx context.Context, id int64, in ProgramPatchInput) (catalog.Program, error) {
	if id <= 0 {
		return catalog.Program{}, ErrInvalidInput
	}

	patch := repository.ProgramPatch{TypeID: in.TypeID, OrganizationID: in.OrganizationID}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return catalog.Program{}, ErrInvalidInput
		}
		patch.Name = &name
	}
	if patch.Name == nil && patch.TypeID == nil && patch.OrganizationID == nil {
		return catalog.Program{}, ErrInvalidInput
	}
	if (patch.TypeID != nil && *patch.TypeID <= 0) || (patch.OrganizationID != nil && *patch.OrganizationID <= 0) {
		return catalog.Program{}, ErrInvalidInput
	}

	if err := u.repo.Update(ctx, id, patch); err != nil {
		return catalog.Program{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgram)
	return u.Details(ctx, id)
}

func (u *Program) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgram)
	return nil
}

// SetPassport replaces the program's criteria. An empty set clears it.
func (u *Program) SetPassport(ctx context.Context, id int64, kksIDs []int64) (catalog.Program, error) {
	if id <= 0 {
		return catalog.Program{}, ErrInvalidInput
	}
	for _, k := range kksIDs {
		if k <= 0 {
			return catalog.Program{}, ErrInvalidInput
		}
	}
	if err := u.repo.SetPassport(ctx, id, NormalizeCriterionIDs(kksIDs)); err != nil {
		return catalog.Program{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyProgram)
	return u.Details(ctx, id)
}
