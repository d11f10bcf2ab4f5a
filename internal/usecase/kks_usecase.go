package usecase

import (
	"context"
	"strings"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/repository"
)

type KKSInput struct {
	FullName  string
	ShortName string
}

type KKSUsecase interface {
	List(ctx context.Context) ([]catalog.KKS, error)
	Create(ctx context.Context, in KKSInput) (catalog.KKS, error)
	Update(ctx context.Context, id int64, in KKSInput) (catalog.KKS, error)
	Delete(ctx context.Context, id int64) error
}

type KKS struct {
	repo    repository.KKSRepository
	lookups *Lookups
}

func NewKKSUsecase(repo repository.KKSRepository, lookups *Lookups) *KKS {
	return &KKS{repo: repo, lookups: lookups}
}

func (u *KKS) List(ctx context.Context) ([]catalog.KKS, error) {
	items, err := cachedList(ctx, u.lookups, LookupKey(FamilyKKS), u.repo.List)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *KKS) Create(ctx context.Context, in KKSInput) (catalog.KKS, error) {
	k, err := in.normalize()
	if err != nil {
		return catalog.KKS{}, err
	}
	created, err := u.repo.Create(ctx, k)
	if err != nil {
		return catalog.KKS{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyKKS)
	return created, nil
}

func (u *KKS) Update(ctx context.Context, id int64, in KKSInput) (catalog.KKS, error) {
	if id <= 0 {
		return catalog.KKS{}, ErrInvalidInput
	}
	k, err := in.normalize()
	if err != nil {
		return catalog.KKS{}, err
	}
	k.ID = id
	updated, err := u.repo.Update(ctx, k)
	if err != nil {
		return catalog.KKS{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyKKS)
	return updated, nil
}

func (u *KKS) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyKKS)
	return nil
}

func (in KKSInput) normalize() (catalog.KKS, error) {
	k := catalog.KKS{
		FullName:  strings.TrimSpace(in.FullName),
		ShortName: strings.TrimSpace(in.ShortName),
	}
	if k.FullName == "" {
		return catalog.KKS{}, ErrInvalidInput
	}
	return k, nil
}
