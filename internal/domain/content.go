package domain

import "time"

// CalendarEvent is a static informational entry on the community calendar.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at,omitempty"`
}

// Internship is a professional-development posting.
type Internship struct {
	ID      string `json:"id"`
	Company string `json:"company"`
	Role    string `json:"role"`
	URL     string `json:"url,omitempty"`
}

// Resource is a link to professional-development material.
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}
