package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

const (
	HistoryCreatedContent = "Lead criado no sistema."

	unknownPreviousStage = "um status anterior"
	unknownNextStage     = "um novo status"
)

// StatusChangeContent describes a stage transition. Stage ids that are not
// configured are named with a placeholder.
func StatusChangeContent(stages []entity.FunnelStage, from, to entity.StageID) string {
	oldTitle := entity.ResolveStage(stages, from).Title(unknownPreviousStage)
	newTitle := entity.ResolveStage(stages, to).Title(unknownNextStage)
	return fmt.Sprintf("Status alterado de '%s' para '%s'.", oldTitle, newTitle)
}

// CreateLead validates the input, places the lead on the first configured
// stage and records its creation entry. The new lead goes to the top of
// the collection.
func (f *Funnel) CreateLead(ctx context.Context, in LeadInput) (entity.Lead, error) {
	in.normalize()
	if err := validateInput(f.validate, in); err != nil {
		return entity.Lead{}, err
	}

	f.mu.Lock()
	if err := f.checkCampaign(in.CampaignID); err != nil {
		f.mu.Unlock()
		return entity.Lead{}, err
	}
	modules, err := f.resolveModules(in.Modules, nil)
	if err != nil {
		f.mu.Unlock()
		return entity.Lead{}, err
	}

	now := f.now()
	lead := entity.Lead{
		ID:             f.newID(),
		Name:           in.Name,
		Company:        in.Company,
		Sector:         in.Sector,
		Email:          in.Email,
		Phone:          in.Phone,
		StageID:        entity.DefaultStageID(f.state.Stages),
		CampaignID:     in.CampaignID,
		LastContact:    in.LastContact,
		CalendarEvents: []entity.CalendarEvent{},
		History: []entity.HistoryEntry{
			entity.NewHistoryEntry(f.newID(), now, entity.HistoryCreation, HistoryCreatedContent),
		},
	}
	lead.SetModules(modules)

	leads := append([]entity.Lead{lead}, entity.CloneLeads(f.state.Leads)...)
	if err := f.commitLeads(ctx, leads); err != nil {
		f.mu.Unlock()
		return entity.Lead{}, err
	}
	f.mu.Unlock()

	f.publish(ctx, entity.NewLeadEvent(entity.LeadCreated, lead, now))
	return lead.Clone(), nil
}

// UpdateLead replaces the editable fields of a lead. Stage, history and
// calendar state are left alone; use ChangeStage, AddNote and the calendar
// operations for those.
func (f *Funnel) UpdateLead(ctx context.Context, id string, in LeadInput) (entity.Lead, error) {
	in.normalize()
	if err := validateInput(f.validate, in); err != nil {
		return entity.Lead{}, err
	}

	lead, _, err := f.mutateLead(ctx, id, func(l *entity.Lead) (bool, error) {
		if err := f.checkCampaign(in.CampaignID); err != nil {
			return false, err
		}
		modules, err := f.resolveModules(in.Modules, l)
		if err != nil {
			return false, err
		}
		l.Name = in.Name
		l.Company = in.Company
		l.Sector = in.Sector
		l.Email = in.Email
		l.Phone = in.Phone
		l.CampaignID = in.CampaignID
		l.LastContact = in.LastContact
		l.SetModules(modules)
		return true, nil
	})
	return lead, err
}

// DeleteLead removes the lead with its history and events once c confirms.
func (f *Funnel) DeleteLead(ctx context.Context, id string, c Confirmer) error {
	f.mu.Lock()
	i := f.indexOfLead(id)
	if i < 0 {
		f.mu.Unlock()
		return notFound(entity.ErrLeadNotFound, id)
	}
	if !confirmed(c, PromptDeleteLead) {
		f.mu.Unlock()
		return notConfirmed("lead")
	}

	removed := f.state.Leads[i].Clone()
	leads := make([]entity.Lead, 0, len(f.state.Leads)-1)
	for j, l := range f.state.Leads {
		if j != i {
			leads = append(leads, l.Clone())
		}
	}
	if err := f.commitLeads(ctx, leads); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	f.publish(ctx, entity.NewLeadEvent(entity.LeadDeleted, removed, f.now()))
	return nil
}

// ChangeStage moves a lead and logs the transition. Moving a lead to the
// stage it is already on changes nothing. An empty stage id is rejected.
func (f *Funnel) ChangeStage(ctx context.Context, id string, to entity.StageID) (entity.Lead, error) {
	lead, _, err := f.changeStage(ctx, id, to)
	return lead, err
}

// changeStage also reports whether the lead actually moved.
func (f *Funnel) changeStage(ctx context.Context, id string, to entity.StageID) (entity.Lead, bool, error) {
	to = entity.StageID(strings.TrimSpace(string(to)))
	if to == "" {
		return entity.Lead{}, false, &DomainError{
			Code:    CodeValidation,
			Message: "validation failed: stage_id (is required)",
		}
	}

	var from entity.StageID
	var at time.Time
	lead, changed, err := f.mutateLead(ctx, id, func(l *entity.Lead) (bool, error) {
		if l.StageID == to {
			return false, nil
		}
		from = l.StageID
		at = f.now()
		content := StatusChangeContent(f.state.Stages, from, to)
		l.PrependHistory(entity.NewHistoryEntry(f.newID(), at, entity.HistoryStatusChange, content))
		l.StageID = to
		return true, nil
	})
	if err != nil || !changed {
		return lead, false, err
	}

	event := entity.NewLeadEvent(entity.LeadStageChanged, lead, at)
	event.FromStage = from
	event.Content = lead.History[0].Content
	f.publish(ctx, event)
	return lead, true, nil
}

// AddNote prepends a note entry. Blank text is ignored.
func (f *Funnel) AddNote(ctx context.Context, id, text string) (entity.Lead, error) {
	note := strings.TrimSpace(text)
	var at time.Time
	lead, changed, err := f.mutateLead(ctx, id, func(l *entity.Lead) (bool, error) {
		if note == "" {
			return false, nil
		}
		at = f.now()
		l.PrependHistory(entity.NewHistoryEntry(f.newID(), at, entity.HistoryNote, note))
		return true, nil
	})
	if err != nil || !changed {
		return lead, err
	}

	event := entity.NewLeadEvent(entity.LeadNoteAdded, lead, at)
	event.Content = note
	f.publish(ctx, event)
	return lead, nil
}

// ToggleCalendarLink flips the flag. Existing events are kept when the
// lead is unlinked.
func (f *Funnel) ToggleCalendarLink(ctx context.Context, id string) (entity.Lead, error) {
	lead, _, err := f.mutateLead(ctx, id, func(l *entity.Lead) (bool, error) {
		l.CalendarLinked = !l.CalendarLinked
		return true, nil
	})
	return lead, err
}

// ScheduleEvent appends an event; start and end are RFC 3339 timestamps.
func (f *Funnel) ScheduleEvent(ctx context.Context, id string, in EventInput) (entity.Lead, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(f.validate, in); err != nil {
		return entity.Lead{}, err
	}
	start, err := parseEventTime("start", in.Start)
	if err != nil {
		return entity.Lead{}, err
	}
	end, err := parseEventTime("end", in.End)
	if err != nil {
		return entity.Lead{}, err
	}

	lead, _, err := f.mutateLead(ctx, id, func(l *entity.Lead) (bool, error) {
		l.CalendarEvents = append(l.CalendarEvents, entity.CalendarEvent{
			ID:    f.newID(),
			Title: in.Title,
			Start: start,
			End:   end,
		})
		return true, nil
	})
	return lead, err
}

func (f *Funnel) DeleteEvent(ctx context.Context, id, eventID string) (entity.Lead, error) {
	lead, _, err := f.mutateLead(ctx, id, func(l *entity.Lead) (bool, error) {
		kept := make([]entity.CalendarEvent, 0, len(l.CalendarEvents))
		for _, e := range l.CalendarEvents {
			if e.ID != eventID {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(l.CalendarEvents) {
			return false, notFound(entity.ErrEventNotFound, eventID)
		}
		l.CalendarEvents = kept
		return true, nil
	})
	return lead, err
}

// AttachModule snapshots a catalog module onto the lead. A non-nil price
// overrides the catalog price for this lead only.
func (f *Funnel) AttachModule(ctx context.Context, leadID, moduleID string, price *decimal.Decimal) (entity.Lead, error) {
	lead, _, err := f.mutateLead(ctx, leadID, func(l *entity.Lead) (bool, error) {
		m, ok := entity.FindModule(f.state.Modules, moduleID)
		if !ok {
			return false, notFound(entity.ErrModuleNotFound, moduleID)
		}
		if price != nil {
			m.Price = *price
		}
		l.AttachModule(m)
		return true, nil
	})
	return lead, err
}

// DetachModule removes a module snapshot. Detaching a module the lead does
// not carry is a no-op.
func (f *Funnel) DetachModule(ctx context.Context, leadID, moduleID string) (entity.Lead, error) {
	lead, _, err := f.mutateLead(ctx, leadID, func(l *entity.Lead) (bool, error) {
		return l.DetachModule(moduleID), nil
	})
	return lead, err
}

// checkCampaign must be called with the lock held.
func (f *Funnel) checkCampaign(id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := entity.FindCampaign(f.state.Campaigns, *id); !ok {
		return notFound(entity.ErrCampaignNotFound, *id)
	}
	return nil
}

// resolveModules turns selections into snapshots. Modules the lead already
// carries keep their snapshot unless a new price is given; everything else
// is copied from the catalog. Must be called with the lock held.
func (f *Funnel) resolveModules(selected []ModuleSelection, current *entity.Lead) ([]entity.Module, error) {
	modules := make([]entity.Module, 0, len(selected))
	seen := make(map[string]bool, len(selected))
	for _, sel := range selected {
		if seen[sel.ModuleID] {
			continue
		}
		seen[sel.ModuleID] = true

		var (
			m  entity.Module
			ok bool
		)
		if current != nil {
			m, ok = current.Module(sel.ModuleID)
		}
		if !ok {
			m, ok = entity.FindModule(f.state.Modules, sel.ModuleID)
		}
		if !ok {
			return nil, notFound(entity.ErrModuleNotFound, sel.ModuleID)
		}
		if sel.Price != nil {
			m.Price = *sel.Price
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func parseEventTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &DomainError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("validation failed: %s (invalid RFC 3339 timestamp)", field),
			Err:     err,
		}
	}
	return t.UTC(), nil
}
