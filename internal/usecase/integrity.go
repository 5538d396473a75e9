package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// DetachCampaignFromLeads clears the campaign reference on every lead that
// carries campaignID. Modules and history are untouched. It returns the new
// collection and the number of leads changed.
func DetachCampaignFromLeads(leads []entity.Lead, campaignID string) ([]entity.Lead, int) {
	out := entity.CloneLeads(leads)
	n := 0
	for i := range out {
		if out[i].HasCampaign(campaignID) {
			out[i].CampaignID = nil
			n++
		}
	}
	return out, n
}

// DetachModuleFromLeads removes the module snapshot from every lead and
// recomputes their totals.
func DetachModuleFromLeads(leads []entity.Lead, moduleID string) ([]entity.Lead, int) {
	out := entity.CloneLeads(leads)
	n := 0
	for i := range out {
		if out[i].DetachModule(moduleID) {
			n++
		}
	}
	return out, n
}

// StageInUse counts the leads currently on stageID.
func StageInUse(leads []entity.Lead, stageID entity.StageID) int {
	n := 0
	for _, l := range leads {
		if l.StageID == stageID {
			n++
		}
	}
	return n
}

// StageGuard is the outcome of a stage removal check.
type StageGuard struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	InUse   int    `json:"in_use"`
}

// CanDeleteStage allows removing a stage only when no lead references it.
func CanDeleteStage(leads []entity.Lead, stageID entity.StageID) StageGuard {
	n := StageInUse(leads, stageID)
	if n > 0 {
		return StageGuard{
			Reason: fmt.Sprintf("a etapa possui %d lead(s) e não pode ser excluída", n),
			InUse:  n,
		}
	}
	return StageGuard{Allowed: true}
}

// DeleteCampaign removes the campaign and clears it from every lead.
func (f *Funnel) DeleteCampaign(ctx context.Context, id string, c Confirmer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := entity.FindCampaign(f.state.Campaigns, id); !ok {
		return notFound(entity.ErrCampaignNotFound, id)
	}
	if !confirmed(c, PromptDeleteCampaign) {
		return notConfirmed("campanha")
	}

	campaigns := make([]entity.Campaign, 0, len(f.state.Campaigns))
	for _, cp := range f.state.Campaigns {
		if cp.ID != id {
			campaigns = append(campaigns, cp)
		}
	}
	leads, n := DetachCampaignFromLeads(f.state.Leads, id)

	prevLeads := f.state.Leads
	tx := NewTransaction()
	tx.AddStep("save_leads",
		func(ctx context.Context) error { return saveSlot(ctx, f.store, SlotLeads, leads) },
		func(ctx context.Context) error { return saveSlot(ctx, f.store, SlotLeads, prevLeads) },
	)
	tx.AddStep("save_campaigns",
		func(ctx context.Context) error { return saveSlot(ctx, f.store, SlotCampaigns, campaigns) },
		nil,
	)
	if err := tx.Execute(ctx); err != nil {
		return storageError(err)
	}

	f.state.Leads = leads
	f.state.Campaigns = campaigns
	log.Printf("[FUNNEL] campanha %s excluída, %d lead(s) desvinculado(s)", id, n)
	return nil
}

// DeleteModule removes the module from the catalog and from every lead.
func (f *Funnel) DeleteModule(ctx context.Context, id string, c Confirmer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := entity.FindModule(f.state.Modules, id); !ok {
		return notFound(entity.ErrModuleNotFound, id)
	}
	if !confirmed(c, PromptDeleteModule) {
		return notConfirmed("módulo")
	}

	modules := make([]entity.Module, 0, len(f.state.Modules))
	for _, m := range f.state.Modules {
		if m.ID != id {
			modules = append(modules, m)
		}
	}
	leads, n := DetachModuleFromLeads(f.state.Leads, id)

	prevLeads := f.state.Leads
	tx := NewTransaction()
	tx.AddStep("save_leads",
		func(ctx context.Context) error { return saveSlot(ctx, f.store, SlotLeads, leads) },
		func(ctx context.Context) error { return saveSlot(ctx, f.store, SlotLeads, prevLeads) },
	)
	tx.AddStep("save_modules",
		func(ctx context.Context) error { return saveSlot(ctx, f.store, SlotModules, modules) },
		nil,
	)
	if err := tx.Execute(ctx); err != nil {
		return storageError(err)
	}

	f.state.Leads = leads
	f.state.Modules = modules
	log.Printf("[FUNNEL] módulo %s excluído, removido de %d lead(s)", id, n)
	return nil
}

// DeleteStage removes a stage nobody is on. A refusal is reported in the
// returned guard and leaves the stages unchanged.
func (f *Funnel) DeleteStage(ctx context.Context, id entity.StageID) (StageGuard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := entity.IndexOfStage(f.state.Stages, id)
	if i < 0 {
		return StageGuard{}, notFound(entity.ErrStageNotFound, string(id))
	}
	guard := CanDeleteStage(f.state.Leads, id)
	if !guard.Allowed {
		return guard, nil
	}

	stages := make([]entity.FunnelStage, 0, len(f.state.Stages)-1)
	stages = append(stages, f.state.Stages[:i]...)
	stages = append(stages, f.state.Stages[i+1:]...)
	if err := f.persist(ctx, SlotStages, stages); err != nil {
		return StageGuard{}, err
	}
	f.state.Stages = stages
	return guard, nil
}

// ReorderStages applies a new order. ids must name every configured stage
// exactly once. Leads keep their stage ids; only the default stage for new
// leads can change.
func (f *Funnel) ReorderStages(ctx context.Context, ids []entity.StageID) ([]entity.FunnelStage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(ids) != len(f.state.Stages) {
		return nil, invalidOrder("a nova ordem deve conter todas as %d etapas", len(f.state.Stages))
	}
	stages := make([]entity.FunnelStage, 0, len(ids))
	seen := make(map[entity.StageID]bool, len(ids))
	for _, id := range ids {
		i := entity.IndexOfStage(f.state.Stages, id)
		if i < 0 {
			return nil, notFound(entity.ErrStageNotFound, string(id))
		}
		if seen[id] {
			return nil, invalidOrder("etapa %s repetida na nova ordem", id)
		}
		seen[id] = true
		stages = append(stages, f.state.Stages[i])
	}

	if err := f.persist(ctx, SlotStages, stages); err != nil {
		return nil, err
	}
	f.state.Stages = stages
	return append([]entity.FunnelStage{}, stages...), nil
}

// SaveStages replaces the stage list as the stage editor does. Stages
// without an id get one; blank titles become the default title. A stage
// that leads still reference cannot be dropped.
func (f *Funnel) SaveStages(ctx context.Context, edited []entity.FunnelStage) ([]entity.FunnelStage, StageGuard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stages := make([]entity.FunnelStage, 0, len(edited))
	kept := make(map[entity.StageID]bool, len(edited))
	for i, s := range edited {
		if s.ID == "" {
			s.ID = entity.StageID(f.newID())
		}
		if kept[s.ID] {
			return nil, StageGuard{}, invalidOrder("etapa %s repetida", s.ID)
		}
		kept[s.ID] = true
		s = withStageDefaults(s, i)
		stages = append(stages, s)
	}

	for _, old := range f.state.Stages {
		if kept[old.ID] {
			continue
		}
		if guard := CanDeleteStage(f.state.Leads, old.ID); !guard.Allowed {
			guard.Reason = fmt.Sprintf("etapa '%s': %s", old.Title, guard.Reason)
			return f.stagesCopy(), guard, nil
		}
	}

	if err := f.persist(ctx, SlotStages, stages); err != nil {
		return nil, StageGuard{}, err
	}
	f.state.Stages = stages
	return f.stagesCopy(), StageGuard{Allowed: true}, nil
}

func (f *Funnel) stagesCopy() []entity.FunnelStage {
	return append([]entity.FunnelStage{}, f.state.Stages...)
}

func invalidOrder(format string, args ...any) error {
	return &DomainError{
		Code:    CodeInvalidOrder,
		Message: fmt.Sprintf(format, args...),
	}
}
