package app

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"halfway.meetspot.org/internal/config"
	"halfway.meetspot.org/internal/models"
	"halfway.meetspot.org/internal/places"
	"halfway.meetspot.org/internal/search"
	"halfway.meetspot.org/internal/session"
)

// stubProvider satisfies places.Provider with canned responses so handler
// tests never reach the network. It counts SearchNearby calls so tests can
// assert that an operation did not trigger a new search.
type stubProvider struct {
	mu          sync.Mutex
	searchCalls int

	venues      []places.RawVenue
	suggestions []places.Suggestion
	location    models.Location
	err         error
}

func (s *stubProvider) SearchNearby(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]places.RawVenue, error) {
	s.mu.Lock()
	s.searchCalls++
	s.mu.Unlock()
	return s.venues, s.err
}

func (s *stubProvider) searchCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchCalls
}

func (s *stubProvider) Autocomplete(ctx context.Context, query string) ([]places.Suggestion, error) {
	return s.suggestions, s.err
}

func (s *stubProvider) Geocode(ctx context.Context, address string) (models.Location, error) {
	return s.location, s.err
}

func (s *stubProvider) ReverseGeocode(ctx context.Context, coord models.Coordinate) (models.Location, error) {
	return s.location, s.err
}

func newTestApplication(t *testing.T, provider places.Provider) *Application {
	t.Helper()

	cfg := config.NewConfig(4000, "testing", config.Settings{
		Provider:          config.ProviderSettings{APIKey: "test-key"},
		DefaultCategories: []string{"cafe"},
	})
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	return &Application{
		ConfigService: config.NewConfigService(logger, nil, cfg),
		Provider:      provider,
		Coordinator:   search.NewCoordinator(provider, logger),
		Sessions:      session.NewStore(),
		Logger:        logger,
		Version:       "test-version",
	}
}
