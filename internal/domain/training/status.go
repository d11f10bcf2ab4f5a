package training

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/domain/document"
)

// RetrainingPeriodYears is how long a qualifying document stays valid.
const RetrainingPeriodYears = 3

var ErrDanglingProgram = errors.New("document references unknown program")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006",
}

// ParseDate accepts the date formats stored and submitted by clients.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type Evaluator struct {
	now func() time.Time
}

func NewEvaluator(now func() time.Time) Evaluator {
	if now == nil {
		now = time.Now
	}
	return Evaluator{now: now}
}

// IsTrainingNeeded compares calendar days: a date exactly three years before
// today is still valid, one day earlier is not.
func (e Evaluator) IsTrainingNeeded(last *time.Time) bool {
	if last == nil || last.IsZero() {
		return true
	}
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	threshold := dayOf(now()).AddDate(-RetrainingPeriodYears, 0, 0)
	return dayOf(*last).Before(threshold)
}

// IsTrainingNeededRaw treats unparseable input the same as a missing date.
func (e Evaluator) IsTrainingNeededRaw(raw string) bool {
	t, ok := ParseDate(raw)
	if !ok {
		return true
	}
	return e.IsTrainingNeeded(&t)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Status struct {
	CriterionID    int64
	FullName       string
	ShortName      string
	LastIssuedAt   *time.Time
	TrainingNeeded bool
}

// ComputeKksStatus reports, for every criterion in the catalog, the latest
// issuance date among the worker's documents whose program passport covers
// it. passports maps program id to criterion ids.
func ComputeKksStatus(workerID int64, criteria []catalog.KKS, docs []document.Document, passports map[int64][]int64) ([]Status, error) {
	latest := make(map[int64]time.Time, len(criteria))
	for _, d := range docs {
		if d.WorkerID != workerID {
			continue
		}
		covered, ok := passports[d.ProgramID]
		if !ok {
			return nil, fmt.Errorf("%w: document_id=%d program_id=%d", ErrDanglingProgram, d.ID, d.ProgramID)
		}
		if d.IssuedAt == nil || d.IssuedAt.IsZero() {
			continue
		}
		for _, cid := range covered {
			if cur, seen := latest[cid]; !seen || d.IssuedAt.After(cur) {
				latest[cid] = *d.IssuedAt
			}
		}
	}

	out := make([]Status, 0, len(criteria))
	for _, c := range criteria {
		st := Status{CriterionID: c.ID, FullName: c.FullName, ShortName: c.ShortName}
		if t, ok := latest[c.ID]; ok {
			t := t
			st.LastIssuedAt = &t
		}
		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].CriterionID < out[j].CriterionID
	})
	return out, nil
}

// Evaluate fills TrainingNeeded on every row.
func (e Evaluator) Evaluate(rows []Status) []Status {
	for i := range rows {
		rows[i].TrainingNeeded = e.IsTrainingNeeded(rows[i].LastIssuedAt)
	}
	return rows
}
