package document

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrInvertedRange = errors.New("range start is after its end")
)

type Document struct {
	ID         int64
	WorkerID   int64
	ProgramID  int64
	RegNumber  string
	FormSeries string
	FormNumber string
	IssuedAt   *time.Time
	ValidFrom  *time.Time
	ValidTo    *time.Time
}

// Listing is a document joined with the names needed to display it.
type Listing struct {
	Document

	ProgramName  string
	OrgFullName  string
	OrgShortName string
	WorkerName   string
	Criteria     []string
}

// Range bounds issuance dates inclusively. Nil ends are open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// Validate rejects a range whose start lies after its end.
func (r Range) Validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return ErrInvertedRange
	}
	return nil
}

func (r Range) Bounded() bool {
	return r.From != nil || r.To != nil
}
