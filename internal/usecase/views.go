package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

const filterDateLayout = "2006-01-02"

// DateRange filters leads by creation date. Both bounds are inclusive UTC
// days; a nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange parses YYYY-MM-DD bounds. Empty strings leave the bound open.
// Start is 00:00:00Z of its day and end is 23:59:59Z of its day.
func NewDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(filterDateLayout, s)
		if err != nil {
			return DateRange{}, invalidFilter("start", s, err)
		}
		r.Start = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.Parse(filterDateLayout, s)
		if err != nil {
			return DateRange{}, invalidFilter("end", s, err)
		}
		t = t.Add(24*time.Hour - time.Second)
		r.End = &t
	}
	return r, nil
}

func (r DateRange) Active() bool {
	return r.Start != nil || r.End != nil
}

func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// FilterByCreationDate keeps the leads whose creation entry falls in r.
// With an active range, leads without a creation entry are dropped.
func FilterByCreationDate(leads []entity.Lead, r DateRange) []entity.Lead {
	if !r.Active() {
		return entity.CloneLeads(leads)
	}
	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		created, ok := l.CreationEntry()
		if ok && r.Contains(created.Date) {
			out = append(out, l.Clone())
		}
	}
	return out
}

// GroupByStage partitions leads by stage id, keeping their relative order.
// Every configured stage gets an entry; leads on unknown stages are left
// out.
func GroupByStage(leads []entity.Lead, stages []entity.FunnelStage) map[entity.StageID][]entity.Lead {
	groups := make(map[entity.StageID][]entity.Lead, len(stages))
	for _, s := range stages {
		groups[s.ID] = []entity.Lead{}
	}
	for _, l := range leads {
		if g, ok := groups[l.StageID]; ok {
			groups[l.StageID] = append(g, l.Clone())
		}
	}
	return groups
}

func StageTotalValue(leads []entity.Lead) decimal.Decimal {
	total := decimal.Zero
	for _, l := range leads {
		total = total.Add(l.TotalValue)
	}
	return total
}

type Column struct {
	Stage entity.FunnelStage
	Leads []entity.Lead
	Total decimal.Decimal
}

// Board is the derived kanban view: one column per stage, in stage order.
type Board struct {
	Columns []Column
	Filter  DateRange
}

func BuildBoard(leads []entity.Lead, stages []entity.FunnelStage, r DateRange) Board {
	groups := GroupByStage(FilterByCreationDate(leads, r), stages)
	b := Board{Columns: make([]Column, 0, len(stages)), Filter: r}
	for _, s := range stages {
		g := groups[s.ID]
		b.Columns = append(b.Columns, Column{
			Stage: s,
			Leads: g,
			Total: StageTotalValue(g),
		})
	}
	return b
}

// Board derives the board from the current state.
func (f *Funnel) Board(r DateRange) Board {
	f.mu.Lock()
	defer f.mu.Unlock()
	return BuildBoard(f.state.Leads, f.state.Stages, r)
}

func invalidFilter(field, value string, err error) error {
	return &DomainError{
		Code:    CodeInvalidFilter,
		Message: fmt.Sprintf("filtro de data inválido (%s=%q), use AAAA-MM-DD", field, value),
		Err:     err,
	}
}
