package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/domain/document"
	"kks-tracker/internal/domain/worker"
	"kks-tracker/internal/repository"
)

type memCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deleted []string
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			c.deleted = append(c.deleted, k)
		}
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

type recordingNotifier struct {
	mu     sync.Mutex
	events [][]string
}

func (n *recordingNotifier) LookupsChanged(families ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, families)
}

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

func newTestLookups() (*Lookups, *memCache, *recordingNotifier) {
	c := newMemCache()
	n := &recordingNotifier{}
	logger, _ := testLogger()
	return NewLookups(c, n, time.Minute, logger), c, n
}

type fakeKKSRepo struct {
	items     []catalog.KKS
	listCalls int
	err       error
	deleteErr error
}

func (f *fakeKKSRepo) List(context.Context) ([]catalog.KKS, error) {
	f.listCalls++
	return f.items, f.err
}
func (f *fakeKKSRepo) GetByID(_ context.Context, id int64) (catalog.KKS, error) {
	for _, k := range f.items {
		if k.ID == id {
			return k, nil
		}
	}
	return catalog.KKS{}, repository.ErrNotFound
}
func (f *fakeKKSRepo) Create(_ context.Context, k catalog.KKS) (catalog.KKS, error) {
	k.ID = int64(len(f.items) + 1)
	f.items = append(f.items, k)
	return k, f.err
}
func (f *fakeKKSRepo) Update(_ context.Context, k catalog.KKS) (catalog.KKS, error) {
	return k, f.err
}
func (f *fakeKKSRepo) Delete(context.Context, int64) error { return f.deleteErr }

type fakeProgramRepo struct {
	recommend      []catalog.ProgramSummary
	recommendErr   error
	recommendCalls int
	recommendArgs  []int64

	passports    map[int64][]int64
	passportsErr error
	passportSet  map[int64][]int64
	programs     map[int64]catalog.Program
}

func (f *fakeProgramRepo) List(context.Context) ([]catalog.ProgramSummary, error) { return nil, nil }
func (f *fakeProgramRepo) GetByID(_ context.Context, id int64) (catalog.Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return catalog.Program{}, repository.ErrNotFound
	}
	return p, nil
}
func (f *fakeProgramRepo) Create(_ context.Context, p catalog.Program) (catalog.Program, error) {
	if f.programs == nil {
		f.programs = map[int64]catalog.Program{}
	}
	p.ID = int64(len(f.programs) + 1)
	f.programs[p.ID] = p
	return p, nil
}
func (f *fakeProgramRepo) Update(_ context.Context, id int64, patch repository.ProgramPatch) error {
	p, ok := f.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	f.programs[id] = p
	return nil
}
func (f *fakeProgramRepo) Delete(context.Context, int64) error { return nil }
func (f *fakeProgramRepo) SetPassport(_ context.Context, id int64, ids []int64) error {
	if _, ok := f.programs[id]; !ok {
		return repository.ErrNotFound
	}
	if f.passportSet == nil {
		f.passportSet = map[int64][]int64{}
	}
	f.passportSet[id] = ids
	return nil
}
func (f *fakeProgramRepo) PassportsFor(_ context.Context, ids []int64) (map[int64][]int64, error) {
	if f.passportsErr != nil {
		return nil, f.passportsErr
	}
	out := map[int64][]int64{}
	for _, id := range ids {
		if p, ok := f.passports[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (f *fakeProgramRepo) Recommend(_ context.Context, ids []int64) ([]catalog.ProgramSummary, error) {
	f.recommendCalls++
	f.recommendArgs = ids
	return f.recommend, f.recommendErr
}

type fakeDocumentRepo struct {
	listings   []document.Listing
	raw        []document.Document
	err        error
	lastFilter repository.DocumentFilter
	created    document.Document
	createErr  error
}

func (f *fakeDocumentRepo) List(_ context.Context, flt repository.DocumentFilter) ([]document.Listing, error) {
	f.lastFilter = flt
	out := make([]document.Listing, len(f.listings))
	copy(out, f.listings)
	return out, f.err
}
func (f *fakeDocumentRepo) ListRaw(_ context.Context, flt repository.DocumentFilter) ([]document.Document, error) {
	f.lastFilter = flt
	if f.err != nil {
		return nil, f.err
	}
	out := make([]document.Document, 0, len(f.raw))
	for _, d := range f.raw {
		if flt.WorkerID > 0 && d.WorkerID != flt.WorkerID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
func (f *fakeDocumentRepo) GetByID(context.Context, int64) (document.Document, error) {
	return document.Document{}, repository.ErrNotFound
}
func (f *fakeDocumentRepo) Create(_ context.Context, d document.Document) (document.Document, error) {
	if f.createErr != nil {
		return document.Document{}, f.createErr
	}
	d.ID = 100
	f.created = d
	return d, nil
}
func (f *fakeDocumentRepo) Update(_ context.Context, d document.Document) (document.Document, error) {
	return d, f.createErr
}
func (f *fakeDocumentRepo) Delete(context.Context, int64) error { return f.err }

type fakeWorkerRepo struct {
	workers   map[int64]worker.Worker
	staffErr  error
	lastPwSet bool
	assignErr error
	deleteErr error
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	for _, ex := range f.workers {
		if ex.Login == w.Login {
			return worker.Worker{}, worker.ErrLoginTaken
		}
	}
	w.ID = int64(len(f.workers) + 1)
	f.workers[w.ID] = w
	return w, nil
}
func (f *fakeWorkerRepo) Update(_ context.Context, w worker.Worker, updatePassword bool) (worker.Worker, error) {
	cur, ok := f.workers[w.ID]
	if !ok {
		return worker.Worker{}, worker.ErrNotFound
	}
	f.lastPwSet = updatePassword
	if !updatePassword {
		w.PasswordHash = cur.PasswordHash
	}
	f.workers[w.ID] = w
	return w, nil
}
func (f *fakeWorkerRepo) Delete(context.Context, int64) error { return f.deleteErr }
func (f *fakeWorkerRepo) GetByID(_ context.Context, id int64) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrNotFound
	}
	return w, nil
}
func (f *fakeWorkerRepo) GetByLogin(_ context.Context, login string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.Login == login {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrNotFound
}
func (f *fakeWorkerRepo) ListStaff(context.Context) ([]worker.Worker, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	out := []worker.Worker{}
	for _, w := range f.workers {
		if w.Role == worker.RoleStaff {
			out = append(out, w)
		}
	}
	return out, nil
}
func (f *fakeWorkerRepo) ListAll(context.Context) ([]worker.Worker, error) {
	out := []worker.Worker{}
	for _, w := range f.workers {
		out = append(out, w)
	}
	return out, nil
}
func (f *fakeWorkerRepo) AssignCriterion(context.Context, worker.Assignment) error {
	return f.assignErr
}
func (f *fakeWorkerRepo) UnassignCriterion(context.Context, worker.Assignment) error {
	return f.assignErr
}
func (f *fakeWorkerRepo) ListAssignedCriteria(context.Context, int64) ([]int64, error) {
	return []int64{1, 2}, nil
}
