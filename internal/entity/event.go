package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeadEventType string

const (
	LeadCreated      LeadEventType = "lead.created"
	LeadStageChanged LeadEventType = "lead.stage_changed"
	LeadNoteAdded    LeadEventType = "lead.note_added"
	LeadDeleted      LeadEventType = "lead.deleted"
)

// LeadEvent is emitted after a lead mutation has been persisted.
type LeadEvent struct {
	Type       LeadEventType   `json:"type"`
	LeadID     string          `json:"lead_id"`
	Name       string          `json:"name"`
	Company    string          `json:"company"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	TotalValue decimal.Decimal `json:"total_value"`
	FromStage  StageID         `json:"from_stage,omitempty"`
	ToStage    StageID         `json:"to_stage,omitempty"`
	CampaignID string          `json:"campaign_id,omitempty"`
	Content    string          `json:"content,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewLeadEvent(t LeadEventType, l Lead, at time.Time) LeadEvent {
	e := LeadEvent{
		Type:       t,
		LeadID:     l.ID,
		Name:       l.Name,
		Company:    l.Company,
		Email:      l.Email,
		Phone:      l.Phone,
		TotalValue: l.TotalValue,
		ToStage:    l.StageID,
		OccurredAt: at.UTC(),
	}
	if l.CampaignID != nil {
		e.CampaignID = *l.CampaignID
	}
	return e
}
