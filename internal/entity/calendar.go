package entity

import "time"

// CalendarEvent pertence a um único lead.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StartsWithin reports whether the event starts in [from, from+window).
func (e CalendarEvent) StartsWithin(from time.Time, window time.Duration) bool {
	return !e.Start.Before(from) && e.Start.Before(from.Add(window))
}
