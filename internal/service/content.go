package service

import (
	"context"
	"time"

	"github.com/victorverma3/ktpdatabase/internal/domain"
)

// ContentService serves the portal's static informational lists: calendar
// events, internship postings, and professional resources. The content is
// display-only and versioned with the binary.
type ContentService struct {
	events      []domain.CalendarEvent
	internships []domain.Internship
	resources   []domain.Resource
}

// NewContentService creates a content service with the built-in content set.
func NewContentService() *ContentService {
	return &ContentService{
		events:      defaultCalendarEvents(),
		internships: defaultInternships(),
		resources:   defaultResources(),
	}
}

// ListCalendarEvents returns the community calendar, soonest first.
func (s *ContentService) ListCalendarEvents(_ context.Context) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

// ListInternships returns the current internship postings.
func (s *ContentService) ListInternships(_ context.Context) []domain.Internship {
	out := make([]domain.Internship, len(s.internships))
	copy(out, s.internships)
	return out
}

// ListResources returns the professional-development resource links.
func (s *ContentService) ListResources(_ context.Context) []domain.Resource {
	out := make([]domain.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

func defaultCalendarEvents() []domain.CalendarEvent {
	return []domain.CalendarEvent{
		{
			ID:       "evt-chapter-meeting",
			Title:    "Weekly Chapter Meeting",
			Location: "CAS 211",
			StartsAt: time.Date(2026, 9, 7, 19, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC),
		},
		{
			ID:       "evt-resume-workshop",
			Title:    "Resume Workshop",
			Location: "Questrom 426",
			StartsAt: time.Date(2026, 9, 14, 18, 30, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 9, 14, 20, 0, 0, 0, time.UTC),
		},
		{
			ID:       "evt-alumni-panel",
			Title:    "Alumni Tech Panel",
			Location: "CDS 1101",
			StartsAt: time.Date(2026, 10, 2, 18, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 10, 2, 19, 30, 0, 0, time.UTC),
		},
	}
}

func defaultInternships() []domain.Internship {
	return []domain.Internship{
		{ID: "int-swe-summer", Company: "Wayfair", Role: "Software Engineering Intern", URL: "https://www.wayfair.com/careers"},
		{ID: "int-data-summer", Company: "Fidelity", Role: "Data Analytics Intern", URL: "https://jobs.fidelity.com"},
		{ID: "int-quant-summer", Company: "Akuna Capital", Role: "Quantitative Development Intern", URL: "https://akunacapital.com/careers"},
	}
}

func defaultResources() []domain.Resource {
	return []domain.Resource{
		{ID: "res-interview-prep", Title: "Technical Interview Prep", Description: "Curated problem sets and mock interview guides", URL: "https://leetcode.com"},
		{ID: "res-resume-guide", Title: "Resume Guide", Description: "Chapter resume template and review checklist", URL: "https://docs.google.com/ktp-resume-guide"},
		{ID: "res-networking", Title: "Networking Handbook", Description: "Cold outreach templates and alumni directory", URL: "https://docs.google.com/ktp-networking"},
	}
}
