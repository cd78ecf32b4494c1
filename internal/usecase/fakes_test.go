package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"jobfinder/internal/domain/application"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/repository"

	"github.com/google/uuid"
)

type fakeProvider struct {
	mu       sync.Mutex
	calls    int
	listings []job.Listing
	err      error
	block    bool
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Search(ctx context.Context, _ job.Query) ([]job.Listing, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return p.listings, p.err
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// memoryRepo is an in-memory ApplicationRepository.
type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]application.Application
	err  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[uuid.UUID]application.Application{}}
}

func (r *memoryRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return application.Application{}, r.err
	}
	if _, ok := r.rows[a.ID]; ok {
		return application.Application{}, repository.ErrApplicationConflict
	}
	r.rows[a.ID] = a
	return a, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID string) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]application.Application, 0)
	for _, a := range r.rows {
		if a.ClerkUserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].AppliedAt.After(out[j].AppliedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (r *memoryRepo) DeleteOwned(_ context.Context, id uuid.UUID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	a, ok := r.rows[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if a.ClerkUserID != userID {
		return repository.ErrApplicationForbidden
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type memoryIdempotency struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{data: map[string][]byte{}}
}

func (m *memoryIdempotency) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memoryIdempotency) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *memoryIdempotency) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = []byte(value)
	return true, nil
}

func (m *memoryIdempotency) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []application.Event
}

func (p *recordingPublisher) Publish(evt application.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) Events() []application.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]application.Event(nil), p.events...)
}
