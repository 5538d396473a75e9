package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

// memStore is a SlotStore that can be told to fail on a given key.
type memStore struct {
	mu    sync.Mutex
	slots map[string][]byte
	fail  map[string]error
	saves []string
}

func newMemStore() *memStore {
	return &memStore{slots: map[string][]byte{}, fail: map[string]error{}}
}

func (s *memStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, entity.ErrSlotNotFound
	}
	return append([]byte{}, v...), nil
}

func (s *memStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[key]; err != nil {
		return err
	}
	s.slots[key] = append([]byte{}, value...)
	s.saves = append(s.saves, key)
	return nil
}

func (s *memStore) failOn(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[key] = err
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

var testNow = time.Date(2023, 11, 5, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestFunnel builds a funnel over the built-in catalog with no leads.
func newTestFunnel(t *testing.T, opts ...usecase.Option) (*usecase.Funnel, *memStore) {
	t.Helper()
	d := usecase.BuiltinDefaults()
	d.Leads = []entity.Lead{}
	return newFunnelWith(t, d, opts...)
}

func newFunnelWith(t *testing.T, d usecase.Defaults, opts ...usecase.Option) (*usecase.Funnel, *memStore) {
	t.Helper()
	store := newMemStore()
	base := []usecase.Option{
		usecase.WithClock(func() time.Time { return testNow }),
		usecase.WithIDGenerator(sequentialIDs()),
	}
	f := usecase.NewFunnel(context.Background(), store, d, append(base, opts...)...)
	return f, store
}

func validLeadInput() usecase.LeadInput {
	return usecase.LeadInput{
		Name:    "Helena Rocha",
		Company: "Rocha Alimentos",
		Sector:  "Alimentos",
		Email:   "helena@rocha.com",
		Phone:   "(11) 91111-2222",
	}
}

func strPtr(s string) *string { return &s }
