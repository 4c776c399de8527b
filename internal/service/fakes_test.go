package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"debtster-collections/internal/clients"
	"debtster-collections/internal/domain"
	"debtster-collections/internal/repository"
)

type fakeDebtorRepo struct {
	debtors  []domain.Debtor
	created  []domain.DebtorInput
	updated  []domain.DebtorInput
	searches []string
	err      error
}

func (f *fakeDebtorRepo) Create(_ context.Context, in domain.DebtorInput) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, in)
	return int64(len(f.created)), nil
}

func (f *fakeDebtorRepo) Get(_ context.Context, id int64) (*domain.Debtor, error) {
	for _, d := range f.debtors {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.NotFoundError("debtor not found")
}

func (f *fakeDebtorRepo) List(context.Context) ([]domain.Debtor, error) {
	return f.debtors, f.err
}

// Search mimics the store's folded substring match.
func (f *fakeDebtorRepo) Search(_ context.Context, folded string) ([]domain.Debtor, error) {
	f.searches = append(f.searches, folded)
	out := []domain.Debtor{}
	for _, d := range f.debtors {
		if strings.Contains(domain.Fold(d.Name), folded) || strings.Contains(domain.Fold(d.TaxID), folded) {
			out = append(out, d)
		}
	}
	return out, f.err
}

func (f *fakeDebtorRepo) Update(_ context.Context, _ int64, in domain.DebtorInput) (int64, error) {
	f.updated = append(f.updated, in)
	return 1, f.err
}

func (f *fakeDebtorRepo) Delete(context.Context, int64) (int64, error) {
	return 1, f.err
}

type fakeInstrumentRepo struct {
	mu          sync.Mutex
	instruments map[int64]*domain.Instrument
	created     []domain.InstrumentInput
	updated     []domain.InstrumentInput
	setCalls    int
	err         error
}

func newFakeInstrumentRepo(items ...domain.Instrument) *fakeInstrumentRepo {
	f := &fakeInstrumentRepo{instruments: map[int64]*domain.Instrument{}}
	for i := range items {
		it := items[i]
		f.instruments[it.ID] = &it
	}
	return f
}

func (f *fakeInstrumentRepo) Create(_ context.Context, in domain.InstrumentInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return int64(len(f.created)), f.err
}

func (f *fakeInstrumentRepo) Get(_ context.Context, id int64) (*domain.Instrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.instruments[id]
	if !ok {
		return nil, domain.NotFoundError("instrument not found")
	}
	cp := *it
	return &cp, nil
}

func (f *fakeInstrumentRepo) List(context.Context) ([]domain.Instrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Instrument, 0, len(f.instruments))
	for _, it := range f.instruments {
		out = append(out, *it)
	}
	return out, f.err
}

func (f *fakeInstrumentRepo) Search(_ context.Context, folded string) ([]domain.Instrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Instrument{}
	for _, it := range f.instruments {
		name := ""
		if it.DebtorName != nil {
			name = *it.DebtorName
		}
		for _, field := range []string{it.Number, it.Type, name} {
			if strings.Contains(domain.Fold(field), folded) {
				out = append(out, *it)
				break
			}
		}
	}
	return out, f.err
}

func (f *fakeInstrumentRepo) Update(_ context.Context, _ int64, in domain.InstrumentInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, in)
	return 1, f.err
}

func (f *fakeInstrumentRepo) Delete(context.Context, int64) (int64, error) {
	return 1, f.err
}

func (f *fakeInstrumentRepo) SetAccruedInterest(_ context.Context, id int64, amount float64, today domain.Date) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	it, ok := f.instruments[id]
	if !ok || !it.DueDate.Before(today) {
		return 0, nil
	}
	it.AccruedInterest = amount
	return 1, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []domain.Payment
	created  []domain.PaymentInput
	filters  []repository.PaymentsFilter
}

func (f *fakePaymentRepo) Create(_ context.Context, in domain.PaymentInput) (int64, error) {
	f.created = append(f.created, in)
	return int64(len(f.created)), nil
}

func (f *fakePaymentRepo) List(_ context.Context, filter repository.PaymentsFilter) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return f.payments, nil
}

type fakeStageRepo struct {
	stages  []domain.ProcessStage
	created []domain.ProcessStageInput
}

func (f *fakeStageRepo) Create(_ context.Context, in domain.ProcessStageInput) (int64, error) {
	f.created = append(f.created, in)
	return int64(len(f.created)), nil
}

func (f *fakeStageRepo) List(context.Context, repository.ProcessStagesFilter) ([]domain.ProcessStage, error) {
	return f.stages, nil
}

// fakeCache mimics the Redis client, including the miss sentinel.
type fakeCache struct {
	mu   sync.Mutex
	kv   map[string]string
	sets map[string]map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{kv: map[string]string{}, sets: map[string]map[string]bool{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kv[key] = value.(string)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.kv[key]
	if !ok {
		return "", clients.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) SAdd(_ context.Context, key string, members ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sets[key] == nil {
		c.sets[key] = map[string]bool{}
	}
	for _, m := range members {
		c.sets[key][m.(string)] = true
	}
	return nil
}

func (c *fakeCache) SMembers(_ context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for m := range c.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (c *fakeCache) SRem(_ context.Context, key string, members ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range members {
		delete(c.sets[key], m.(string))
	}
	return nil
}

func (c *fakeCache) expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.kv, key)
}

func (c *fakeCache) members(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sets[key])
}

type fakeFileStore struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (f *fakeFileStore) Save(_ context.Context, name string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[name] = data
	return name, nil
}

func (f *fakeFileStore) URL(_ context.Context, saved string) (string, error) {
	return "/files/" + saved, nil
}

type notification struct {
	kind     string
	exportID string
	progress float64
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *fakeNotifier) add(e notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *fakeNotifier) NotifyExportProgress(_ context.Context, id string, progress float64, _ string) error {
	n.add(notification{kind: "progress", exportID: id, progress: progress})
	return nil
}

func (n *fakeNotifier) NotifyExportComplete(_ context.Context, id, _, _ string) error {
	n.add(notification{kind: "complete", exportID: id, progress: 100})
	return nil
}

func (n *fakeNotifier) NotifyExportFailed(_ context.Context, id, _ string) error {
	n.add(notification{kind: "failed", exportID: id})
	return nil
}

func fixedClock(d domain.Date) func() time.Time {
	return func() time.Time { return d.Add(10 * time.Hour) }
}

func ptr[T any](v T) *T {
	return &v
}
