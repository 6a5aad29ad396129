package service

import (
	"context"
	"sync"

	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"
)

// memDocs is an in-memory repository.DocumentRepo keeping insertion order.
type memDocs struct {
	mu   sync.Mutex
	data map[string][]repository.Record
	err  error // returned by every call when set
}

func newMemDocs() *memDocs {
	return &memDocs{data: make(map[string][]repository.Record)}
}

func (m *memDocs) index(collection, id string) int {
	for i, rec := range m.data[collection] {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (m *memDocs) Insert(_ context.Context, collection string, rec repository.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[collection] = append(m.data[collection], rec)
	return nil
}

func (m *memDocs) Find(_ context.Context, collection string) ([]repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]repository.Record{}, m.data[collection]...), nil
}

func (m *memDocs) FindByID(_ context.Context, collection, id string) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if i := m.index(collection, id); i >= 0 {
		rec := m.data[collection][i]
		return &rec, nil
	}
	return nil, nil
}

func (m *memDocs) Update(_ context.Context, collection, id string, mutate repository.MutateFunc) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i := m.index(collection, id)
	if i < 0 {
		return nil, nil
	}
	next, err := mutate(m.data[collection][i])
	if err != nil {
		return nil, err
	}
	m.data[collection][i] = next
	return &next, nil
}

func (m *memDocs) Delete(_ context.Context, collection, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	i := m.index(collection, id)
	if i < 0 {
		return false, nil
	}
	recs := m.data[collection]
	m.data[collection] = append(recs[:i:i], recs[i+1:]...)
	return true, nil
}

func (m *memDocs) DeleteAll(_ context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.data[collection])
	delete(m.data, collection)
	return int64(n), nil
}

func (m *memDocs) FindOne(_ context.Context, collection string) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if recs := m.data[collection]; len(recs) > 0 {
		rec := recs[0]
		return &rec, nil
	}
	return nil, nil
}

func (m *memDocs) Upsert(_ context.Context, collection string, mutate repository.UpsertFunc) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var cur *repository.Record
	if recs := m.data[collection]; len(recs) > 0 {
		c := recs[0]
		cur = &c
	}
	next, err := mutate(cur)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		m.data[collection] = append(m.data[collection], next)
	} else {
		next.ID = cur.ID
		m.data[collection][0] = next
	}
	return &next, nil
}

func (m *memDocs) CountByCollection(context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]int)
	for name, recs := range m.data {
		if len(recs) > 0 {
			out[name] = len(recs)
		}
	}
	return out, nil
}

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotFilter repository.EventFilter
	appended  []models.ContentEvent

	// configured outputs
	events    []models.ContentEvent
	latest    *models.ContentEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.ContentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, filter repository.EventFilter) ([]models.ContentEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFilter = filter
	return f.events, f.err
}

func (f *fakeEventRepo) Latest(context.Context) (*models.ContentEvent, error) {
	return f.latest, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}
