package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// Persisted slot keys. Each slot is loaded and saved independently.
const (
	SlotAuthenticated = "crm-is-authenticated"
	SlotLeads         = "crm-leads"
	SlotModules       = "crm-modules"
	SlotStages        = "crm-stages"
	SlotCampaigns     = "crm-campaigns"
	SlotTemplates     = "crm-templates"
)

// State is the whole application state owned by a Funnel.
type State struct {
	Authenticated bool
	Leads         []entity.Lead
	Modules       []entity.Module
	Stages        []entity.FunnelStage
	Campaigns     []entity.Campaign
	Templates     []entity.CommunicationTemplate
}

func (s State) Clone() State {
	return State{
		Authenticated: s.Authenticated,
		Leads:         entity.CloneLeads(s.Leads),
		Modules:       append([]entity.Module{}, s.Modules...),
		Stages:        append([]entity.FunnelStage{}, s.Stages...),
		Campaigns:     append([]entity.Campaign{}, s.Campaigns...),
		Templates:     append([]entity.CommunicationTemplate{}, s.Templates...),
	}
}

// loadSlot reads a slot, falling back to the default when the slot is
// missing or cannot be decoded. Neither case is an error for the caller.
func loadSlot[T any](ctx context.Context, store SlotStore, key string, fallback T) T {
	raw, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, entity.ErrSlotNotFound) {
			log.Printf("[STORE] falha ao ler slot %s, usando padrão: %v", key, err)
		}
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("[STORE] slot %s corrompido, usando padrão: %v", key, err)
		return fallback
	}
	return v
}

func saveSlot[T any](ctx context.Context, store SlotStore, key string, v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Save(ctx, key, body)
}

func loadState(ctx context.Context, store SlotStore, d Defaults) State {
	s := State{
		Authenticated: loadSlot(ctx, store, SlotAuthenticated, false),
		Leads:         loadSlot(ctx, store, SlotLeads, d.Leads),
		Modules:       loadSlot(ctx, store, SlotModules, d.Modules),
		Stages:        loadSlot(ctx, store, SlotStages, d.Stages),
		Campaigns:     loadSlot(ctx, store, SlotCampaigns, d.Campaigns),
		Templates:     loadSlot(ctx, store, SlotTemplates, d.Templates),
	}
	s = s.Clone()
	for i := range s.Leads {
		s.Leads[i].RecomputeTotal()
	}
	return s
}
