package entity

import (
	"github.com/shopspring/decimal"
)

// Entidade: Lead
type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Sector  string `json:"sector"` // ramo de atividade
	Email   string `json:"email"`
	Phone   string `json:"phone"`

	// Snapshots dos módulos no momento em que foram anexados
	Modules    []Module        `json:"modules"`
	TotalValue decimal.Decimal `json:"total_value"`

	StageID     StageID `json:"stage_id"`
	CampaignID  *string `json:"campaign_id"`
	LastContact string  `json:"last_contact,omitempty"` // YYYY-MM-DD

	// Mais recente primeiro
	History []HistoryEntry `json:"history"`

	CalendarLinked bool            `json:"calendar_linked"`
	CalendarEvents []CalendarEvent `json:"calendar_events"`
}

// SetModules replaces the attached snapshots and recomputes TotalValue.
func (l *Lead) SetModules(modules []Module) {
	l.Modules = append([]Module{}, modules...)
	l.RecomputeTotal()
}

// AttachModule adds a snapshot, replacing an existing one with the same id.
func (l *Lead) AttachModule(m Module) {
	for i := range l.Modules {
		if l.Modules[i].ID == m.ID {
			l.Modules[i] = m
			l.RecomputeTotal()
			return
		}
	}
	l.Modules = append(l.Modules, m)
	l.RecomputeTotal()
}

// DetachModule removes the snapshot with the given id. It reports whether
// anything was removed.
func (l *Lead) DetachModule(moduleID string) bool {
	kept := make([]Module, 0, len(l.Modules))
	for _, m := range l.Modules {
		if m.ID != moduleID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(l.Modules) {
		return false
	}
	l.SetModules(kept)
	return true
}

func (l *Lead) HasModule(moduleID string) bool {
	_, ok := l.Module(moduleID)
	return ok
}

func (l *Lead) Module(moduleID string) (Module, bool) {
	for _, m := range l.Modules {
		if m.ID == moduleID {
			return m, true
		}
	}
	return Module{}, false
}

func (l *Lead) RecomputeTotal() {
	l.TotalValue = SumPrices(l.Modules)
}

func (l *Lead) PrependHistory(e HistoryEntry) {
	l.History = append([]HistoryEntry{e}, l.History...)
}

// CreationEntry returns the first history entry of type creation.
func (l *Lead) CreationEntry() (HistoryEntry, bool) {
	for _, h := range l.History {
		if h.Type == HistoryCreation {
			return h, true
		}
	}
	return HistoryEntry{}, false
}

func (l *Lead) HasCampaign(campaignID string) bool {
	return l.CampaignID != nil && *l.CampaignID == campaignID
}

func (l *Lead) Event(eventID string) (CalendarEvent, bool) {
	for _, e := range l.CalendarEvents {
		if e.ID == eventID {
			return e, true
		}
	}
	return CalendarEvent{}, false
}

// Clone returns a deep copy so callers never share slices with the state.
func (l Lead) Clone() Lead {
	c := l
	c.Modules = append([]Module{}, l.Modules...)
	c.History = append([]HistoryEntry{}, l.History...)
	c.CalendarEvents = append([]CalendarEvent{}, l.CalendarEvents...)
	if l.CampaignID != nil {
		id := *l.CampaignID
		c.CampaignID = &id
	}
	return c
}

func CloneLeads(leads []Lead) []Lead {
	out := make([]Lead, len(leads))
	for i, l := range leads {
		out[i] = l.Clone()
	}
	return out
}
