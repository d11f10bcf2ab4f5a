package usecase

import (
	"context"
	"strings"
	"time"

	"kks-tracker/internal/domain/document"
	"kks-tracker/internal/domain/training"
	"kks-tracker/internal/domain/worker"
	"kks-tracker/internal/repository"
)

type DocumentInput struct {
	WorkerID   int64
	ProgramID  int64
	RegNumber  string
	FormSeries string
	FormNumber string
	IssuedAt   string
	ValidFrom  string
	ValidTo    string
}

// DocumentQuery carries raw list parameters. WorkerID is honoured for admins
// only; 0 means every worker.
type DocumentQuery struct {
	WorkerID int64
	From     string
	To       string
}

// DocumentListing is either OwnDocuments or AllDocuments.
type DocumentListing interface {
	Visibility() worker.Visibility
}

// OwnDocuments is a staff caller's own records. Rows carry no worker name.
type OwnDocuments struct {
	WorkerID int64
	Items    []document.Listing
}

func (OwnDocuments) Visibility() worker.Visibility { return worker.VisibilityOwn }

// AllDocuments is an admin view, optionally narrowed to one worker.
type AllDocuments struct {
	WorkerID int64
	Items    []document.Listing
}

func (AllDocuments) Visibility() worker.Visibility { return worker.VisibilityAll }

type DocumentUsecase interface {
	List(ctx context.Context, caller Caller, q DocumentQuery) (DocumentListing, error)
	Create(ctx context.Context, in DocumentInput) (document.Document, error)
	Update(ctx context.Context, id int64, in DocumentInput) (document.Document, error)
	Delete(ctx context.Context, id int64) error
}

type Document struct {
	repo    repository.DocumentRepository
	lookups *Lookups
}

func NewDocumentUsecase(repo repository.DocumentRepository, lookups *Lookups) *Document {
	return &Document{repo: repo, lookups: lookups}
}

func (u *Document) List(ctx context.Context, caller Caller, q DocumentQuery) (DocumentListing, error) {
	scope, err := caller.scope(q.WorkerID)
	if err != nil {
		return nil, err
	}
	rng, err := ParseRange(q.From, q.To)
	if err != nil {
		return nil, err
	}

	items, err := u.repo.List(ctx, repository.DocumentFilter{WorkerID: scope.WorkerID, Range: rng})
	if err != nil {
		return nil, ErrInternal
	}

	if scope.Visibility == worker.VisibilityOwn {
		for i := range items {
			items[i].WorkerName = ""
		}
		return OwnDocuments{WorkerID: scope.WorkerID, Items: items}, nil
	}
	return AllDocuments{WorkerID: scope.WorkerID, Items: items}, nil
}

func (u *Document) Create(ctx context.Context, in DocumentInput) (document.Document, error) {
	d, err := in.normalize()
	if err != nil {
		return document.Document{}, err
	}
	created, err := u.repo.Create(ctx, d)
	if err != nil {
		return document.Document{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyDocument)
	return created, nil
}

func (u *Document) Update(ctx context.Context, id int64, in DocumentInput) (document.Document, error) {
	if id <= 0 {
		return document.Document{}, ErrInvalidInput
	}
	d, err := in.normalize()
	if err != nil {
		return document.Document{}, err
	}
	d.ID = id
	updated, err := u.repo.Update(ctx, d)
	if err != nil {
		return document.Document{}, storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyDocument)
	return updated, nil
}

func (u *Document) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	u.lookups.Invalidate(ctx, FamilyDocument)
	return nil
}

func (in DocumentInput) normalize() (document.Document, error) {
	if in.WorkerID <= 0 || in.ProgramID <= 0 {
		return document.Document{}, ErrInvalidInput
	}
	d := document.Document{
		WorkerID:   in.WorkerID,
		ProgramID:  in.ProgramID,
		RegNumber:  strings.TrimSpace(in.RegNumber),
		FormSeries: strings.TrimSpace(in.FormSeries),
		FormNumber: strings.TrimSpace(in.FormNumber),
	}

	var err error
	if d.IssuedAt, err = optionalDate(in.IssuedAt); err != nil {
		return document.Document{}, err
	}
	if d.ValidFrom, err = optionalDate(in.ValidFrom); err != nil {
		return document.Document{}, err
	}
	if d.ValidTo, err = optionalDate(in.ValidTo); err != nil {
		return document.Document{}, err
	}
	if err := (document.Range{From: d.ValidFrom, To: d.ValidTo}).Validate(); err != nil {
		return document.Document{}, ErrInvalidInput
	}
	return d, nil
}

// ParseRange parses optional from/to bounds. Malformed or inverted bounds
// are rejected.
func ParseRange(from, to string) (document.Range, error) {
	var (
		r   document.Range
		err error
	)
	if r.From, err = optionalDate(from); err != nil {
		return document.Range{}, err
	}
	if r.To, err = optionalDate(to); err != nil {
		return document.Range{}, err
	}
	if err := r.Validate(); err != nil {
		return document.Range{}, ErrInvalidInput
	}
	return r, nil
}

// optionalDate maps blank input to nil and anything unparseable to
// ErrInvalidInput.
func optionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, ok := training.ParseDate(raw)
	if !ok {
		return nil, ErrInvalidInput
	}
	return &t, nil
}
