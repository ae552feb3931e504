package session

import (
	"sync"
	"time"

	"lastmile/domain/core"
	"lastmile/domain/delivery"
	"lastmile/internal/pipeline"
)

// Session holds one loaded dataset and the user's current filter selection.
// The dataset (records, field map, threshold, report) is immutable for the
// session's lifetime; only the selection mutates. A selection change
// re-filters and re-aggregates on read, it never re-cleans or re-derives,
// and in particular never moves the lateness threshold.
type Session struct {
	ID        core.SessionID
	CreatedAt time.Time

	dataset *pipeline.Dataset

	mu        sync.RWMutex
	selection delivery.Selection
	updatedAt time.Time
}

// New creates a session over a loaded dataset with the default
// everything-selected filter.
func New(dataset *pipeline.Dataset) *Session {
	now := time.Now()
	return &Session{
		ID:        core.NewID(),
		CreatedAt: now,
		dataset:   dataset,
		selection: delivery.DefaultSelection(dataset.Records),
		updatedAt: now,
	}
}

// Dataset returns the immutable loaded dataset.
func (s *Session) Dataset() *pipeline.Dataset {
	return s.dataset
}

// Selection returns a copy of the current filter selection.
func (s *Session) Selection() delivery.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make(delivery.Selection, len(s.selection))
	for field, set := range s.selection {
		copied[field] = delivery.NewValueSet(set.Values()...)
	}
	return copied
}

// SetSelection replaces the filter selection. Only the five categorical
// fields are selectable; anything else is rejected.
func (s *Session) SetSelection(selection delivery.Selection) error {
	for field := range selection {
		if !isCategorical(field) {
			return core.NewUnknownFieldError(string(field))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = selection
	s.updatedAt = time.Now()
	return nil
}

// ResetSelection restores the default all-values selection.
func (s *Session) ResetSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = delivery.DefaultSelection(s.dataset.Records)
	s.updatedAt = time.Now()
}

// Filtered returns the records passing the current selection.
func (s *Session) Filtered() []delivery.DerivedRecord {
	s.mu.RLock()
	selection := s.selection
	s.mu.RUnlock()
	return pipeline.ApplyFilter(s.dataset.Records, selection)
}

// KPIs computes the headline numbers for the current filtered view.
func (s *Session) KPIs() delivery.KPISummary {
	return pipeline.KPIs(s.Filtered())
}

// Summarize groups the current filtered view by a field.
func (s *Session) Summarize(field delivery.Field) ([]delivery.SummaryRow, error) {
	return pipeline.Summarize(s.Filtered(), field)
}

// DistinctValues lists the values of a field across the full dataset, for
// populating filter controls.
func (s *Session) DistinctValues(field delivery.Field) ([]string, error) {
	return pipeline.DistinctValues(s.dataset.Records, field)
}

// UpdatedAt returns the time of the last selection change.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func isCategorical(field delivery.Field) bool {
	for _, f := range delivery.CategoricalFields {
		if f == field {
			return true
		}
	}
	return false
}
