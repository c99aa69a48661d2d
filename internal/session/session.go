// Package session keeps per-search UI state: the raw venue results from the
// last provider search plus the user's current filter toggles and sort order.
// Toggling a filter or changing the sort recomputes the visible list from the
// stored results without touching the places provider again.
package session

import (
	"sync"

	"halfway.meetspot.org/internal/models"
	"halfway.meetspot.org/internal/rank"
)

// DefaultCategories are the venue categories searched and offered as filter
// toggles when a session starts.
var DefaultCategories = []string{"cafe", "restaurant", "bar"}

// Session holds the results of one venue search and the presentation state
// applied on top of them.
type Session struct {
	Mu         sync.RWMutex
	ID         string
	Results    []models.Venue
	Categories map[string]bool
	Sort       models.SortOption
}

// NewSession creates a session with all default category toggles off and
// distance sorting. Leaving every toggle off shows the same view as starting
// with all of DefaultCategories selected: results only ever come from a search
// over the default categories, so each venue matches at least one of them and
// rank.ApplyFilters passes the full result set through when no toggle is
// active. The first explicit toggle then narrows the view to that category
// alone, which is the behavior the filter UI expects.
func NewSession(id string) *Session {
	categories := make(map[string]bool, len(DefaultCategories))
	for _, c := range DefaultCategories {
		categories[c] = false
	}
	return &Session{
		ID:         id,
		Categories: categories,
		Sort:       models.SortByDistance,
	}
}

// SetResults replaces the stored search results.
func (s *Session) SetResults(venues []models.Venue) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Results = append([]models.Venue(nil), venues...)
}

// ToggleCategory flips the given category filter and reports its new state.
// Unknown categories are added as active toggles so that provider-specific
// types returned in results can still be filtered on.
func (s *Session) ToggleCategory(category string) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Categories[category] = !s.Categories[category]
	return s.Categories[category]
}

// SetSortOption updates the active sort order.
func (s *Session) SetSortOption(option models.SortOption) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Sort = option
}

// View returns the stored results with the current filters and sort applied.
// It never mutates the stored slice.
func (s *Session) View() []models.Venue {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return rank.Sort(rank.ApplyFilters(s.Results, s.Categories), s.Sort)
}

// Store is a concurrency-safe registry of sessions keyed by ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with the given ID, creating it if absent.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = NewSession(id)
	st.sessions[id] = s
	return s
}

// Delete removes a session from the store.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
