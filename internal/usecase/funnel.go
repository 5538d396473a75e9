package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// Funnel owns the application state. Every mutation runs under the lock as
// a read-modify-persist cycle: the new value is saved first and only then
// becomes the in-memory state. Getters hand out deep copies.
type Funnel struct {
	mu    sync.Mutex
	store SlotStore
	state State

	publisher EventPublisher
	mailer    EmailService
	now       func() time.Time
	newID     func() string
	validate  *validator.Validate
}

type Option func(*Funnel)

func WithPublisher(p EventPublisher) Option {
	return func(f *Funnel) { f.publisher = p }
}

func WithEmailService(m EmailService) Option {
	return func(f *Funnel) { f.mailer = m }
}

func WithClock(now func() time.Time) Option {
	return func(f *Funnel) { f.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(f *Funnel) { f.newID = gen }
}

// NewFunnel loads every slot from store, using d for the slots that are
// missing or unreadable.
func NewFunnel(ctx context.Context, store SlotStore, d Defaults, opts ...Option) *Funnel {
	f := &Funnel{
		store:    store,
		now:      time.Now,
		newID:    uuid.NewString,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.state = loadState(ctx, store, d)
	log.Printf("[FUNNEL] estado carregado: %d leads, %d etapas, %d módulos, %d campanhas",
		len(f.state.Leads), len(f.state.Stages), len(f.state.Modules), len(f.state.Campaigns))
	return f
}

// Snapshot returns a copy of the whole state.
func (f *Funnel) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

func (f *Funnel) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Authenticated
}

func (f *Funnel) Leads() []entity.Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	return entity.CloneLeads(f.state.Leads)
}

// Lead re-reads a single lead from the collection. There is no separately
// held "open" copy; callers fetch again after each mutation.
func (f *Funnel) Lead(id string) (entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOfLead(id)
	if i < 0 {
		return entity.Lead{}, notFound(entity.ErrLeadNotFound, id)
	}
	return f.state.Leads[i].Clone(), nil
}

func (f *Funnel) Modules() []entity.Module {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Module{}, f.state.Modules...)
}

func (f *Funnel) Stages() []entity.FunnelStage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.FunnelStage{}, f.state.Stages...)
}

func (f *Funnel) Campaigns() []entity.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Campaign{}, f.state.Campaigns...)
}

func (f *Funnel) Templates() []entity.CommunicationTemplate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.CommunicationTemplate{}, f.state.Templates...)
}

func (f *Funnel) indexOfLead(id string) int {
	for i := range f.state.Leads {
		if f.state.Leads[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *Funnel) persist(ctx context.Context, key string, v any) error {
	if err := saveSlot(ctx, f.store, key, v); err != nil {
		log.Printf("[STORE] falha ao salvar slot %s: %v", key, err)
		return storageError(err)
	}
	return nil
}

// commitLeads must be called with the lock held.
func (f *Funnel) commitLeads(ctx context.Context, leads []entity.Lead) error {
	if err := f.persist(ctx, SlotLeads, leads); err != nil {
		return err
	}
	f.state.Leads = leads
	return nil
}

// mutateLead applies fn to a copy of the lead and commits the collection
// when fn reports a change. It returns the lead as stored afterwards.
func (f *Funnel) mutateLead(ctx context.Context, id string, fn func(l *entity.Lead) (bool, error)) (entity.Lead, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOfLead(id)
	if i < 0 {
		return entity.Lead{}, false, notFound(entity.ErrLeadNotFound, id)
	}

	lead := f.state.Leads[i].Clone()
	changed, err := fn(&lead)
	if err != nil {
		return entity.Lead{}, false, err
	}
	if !changed {
		return lead, false, nil
	}

	leads := entity.CloneLeads(f.state.Leads)
	leads[i] = lead
	if err := f.commitLeads(ctx, leads); err != nil {
		return entity.Lead{}, false, err
	}
	return lead.Clone(), true, nil
}

func (f *Funnel) publish(ctx context.Context, event entity.LeadEvent) {
	if f.publisher == nil {
		return
	}
	if err := f.publisher.PublishLeadEvent(ctx, event); err != nil {
		log.Printf("[FUNNEL] WARNING: falha ao publicar evento %s do lead %s: %v", event.Type, event.LeadID, err)
	}
}
