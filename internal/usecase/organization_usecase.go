package usecase

import (
	"context"
	"strings"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/repository"
)

type OrganizationInput struct {
	FullName  string
	ShortName string
}

type OrganizationUsecase interface {
	List(ctx context.Context) ([]catalog.Organization, error)
	Create(ctx context.Context, in OrganizationInput) (catalog.Organization, error)
	Update(ctx context.Context, id int64, in OrganizationInput) (catalog.Organization, error)
	Delete(ctx context.Context, id int64) error
}

type Organization struct {
	repo    repository.OrganizationRepository
	lookups *Lookups
}

func NewOrganizationUsecase(repo repository.OrganizationRepository, lookups *Lookups) *Organization {
	return &Organization{repo: repo, lookups: lookups}
}

func (u *Organization) List(ctx context.Context) ([]catalog.Organization, error) {
	items, err := cachedList(ctx, u.lookups, LookupKey(FamilyOrganization), u.repo.List)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Organization) Create(ctx context.Context, in OrganizationInput) (catalog.Organization, error) {
	o, err := in.normalize()
	if err != nil {
		return catalog.Organization{}, err
	}
	created, err := u.repo.Create(ctx, o)
	if err != nil {
		return catalog.Organization{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyOrganization)
	return created, nil
}

// Update also drops cached programs, which embed organization names.
func (u *Organization) Update(ctx context.Context, id int64, in OrganizationInput) (catalog.Organization, error) {
	if id <= 0 {
		return catalog.Organization{}, ErrInvalidInput
	}
	o, err := in.normalize()
	if err != nil {
		return catalog.Organization{}, err
	}
	o.ID = id
	updated, err := u.repo.Update(ctx, o)
	if err != nil {
		return catalog.Organization{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyOrganization, FamilyProgram)
	return updated, nil
}

func (u *Organization) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyOrganization)
	return nil
}

func (in OrganizationInput) normalize() (catalog.Organization, error) {
	o := catalog.Organization{
		FullName:  strings.TrimSpace(in.FullName),
		ShortName: strings.TrimSpace(in.ShortName),
	}
	if o.FullName == "" || o.ShortName == "" {
		return catalog.Organization{}, ErrInvalidInput
	}
	return o, nil
}
