package entity

import "time"

type HistoryType string

const (
	HistoryCreation     HistoryType = "creation"
	HistoryStatusChange HistoryType = "status_change"
	HistoryNote         HistoryType = "note"
)

// HistoryEntry is immutable once created.
type HistoryEntry struct {
	ID      string      `json:"id"`
	Date    time.Time   `json:"date"`
	Type    HistoryType `json:"type"`
	Content string      `json:"content"`
}

func NewHistoryEntry(id string, at time.Time, t HistoryType, content string) HistoryEntry {
	return HistoryEntry{
		ID:      id,
		Date:    at.UTC(),
		Type:    t,
		Content: content,
	}
}
