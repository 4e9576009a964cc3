package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
)

// Record is one stored plan with its bookkeeping fields.
type Record struct {
	Name      string      `bson:"name" json:"name"`
	Plan      layout.Plan `bson:"plan" json:"plan"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updatedAt"`
}

// Store persists named plans. Put overwrites an existing plan of the
// same name.
type Store interface {
	Put(ctx context.Context, name string, plan *layout.Plan) error
	Get(ctx context.Context, name string) (*layout.Plan, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}

// MemoryStore keeps plans in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]Record)}
}

// Put stores a copy of the plan under name.
func (s *MemoryStore) Put(ctx context.Context, name string, plan *layout.Plan) error {
	if err := errors.ValidatePlanName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[name] = Record{Name: name, Plan: *plan, UpdatedAt: time.Now()}
	return nil
}

// Get returns a copy of the named plan.
func (s *MemoryStore) Get(ctx context.Context, name string) (*layout.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.plans[name]
	if !ok {
		return nil, errors.New(errors.ErrCodePlanNotFound, "plan %q not found", name)
	}
	plan := rec.Plan
	return &plan, nil
}

// List returns all records sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.plans))
	for _, rec := range s.plans {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs, nil
}

// Delete removes the named plan. Missing plans report ErrCodePlanNotFound.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[name]; !ok {
		return errors.New(errors.ErrCodePlanNotFound, "plan %q not found", name)
	}
	delete(s.plans, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
