// Package search coordinates venue discovery around a midpoint: it derives
// the search radius from the two starting points, fans category searches out
// to the places provider concurrently, escalates the radius when nothing
// comes back, and deduplicates the merged results.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"halfway.meetspot.org/internal/geo"
	"halfway.meetspot.org/internal/metrics"
	"halfway.meetspot.org/internal/models"
	"halfway.meetspot.org/internal/places"
	"halfway.meetspot.org/internal/report"
	"halfway.meetspot.org/internal/utils"
)

// Status is the state of one search invocation.
type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusSuccess
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// MarshalText lets Status render as its name in JSON responses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name back into a Status.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusIdle, StatusSearching, StatusSuccess, StatusEmpty, StatusFailed} {
		if string(text) == candidate.String() {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown search status %q", text)
}

// minRadiusMeters is the floor applied to the derived search radius, so two
// nearby (or identical) starting points still search a useful area.
const minRadiusMeters = 3000

// escalationRadiiMeters are the retry tiers attempted when the initial pass
// returns nothing. Tiers above the provider ceiling clamp down to it; a tier
// that repeats an already-attempted radius is skipped rather than re-issued.
var escalationRadiiMeters = []int{50000, 100000}

// Error is a failed provider call during a search, carrying the category
// whose fan-out leg failed. Any single failed leg fails the whole search;
// there is no partial-result tolerance.
type Error struct {
	Category string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("venue search failed for category %q: %v", e.Category, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the terminal state of one search invocation. Venues is populated
// only for StatusSuccess; Message describes the empty state including the
// radius attempted.
type Result struct {
	Status       Status         `json:"status"`
	Venues       []models.Venue `json:"venues"`
	RadiusMeters int            `json:"radius_meters"`
	Message      string         `json:"message,omitempty"`
}

// Coordinator runs venue searches against an injected places provider. It
// holds no per-search state; each invocation owns its own accumulator.
type Coordinator struct {
	Provider places.Provider
	Logger   *slog.Logger
}

// NewCoordinator creates a Coordinator with the given provider and logger.
func NewCoordinator(provider places.Provider, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		Provider: provider,
		Logger:   logger,
	}
}

// InitialRadiusMeters derives the first search radius from the two starting
// points: half the A-B distance, clamped to [3 km, 50 km].
func InitialRadiusMeters(a, b models.Location) int {
	distanceKm := geo.HaversineDistanceKm(a.Coordinate, b.Coordinate)
	return clampRadius(int(distanceKm / 2 * 1000))
}

func clampRadius(radius int) int {
	if radius < minRadiusMeters {
		return minRadiusMeters
	}
	if radius > places.MaxRadiusMeters {
		return places.MaxRadiusMeters
	}
	return radius
}

// Search fetches, merges and deduplicates venues around the midpoint. A new
// call with a moved midpoint always hits the provider again; nothing is
// cached or interpolated. An empty final set is a legitimate terminal state,
// not an error.
func (c *Coordinator) Search(ctx context.Context, mid, a, b models.Location, categories []string) (Result, error) {
	metrics.SearchesStarted.Inc()

	radius := InitialRadiusMeters(a, b)
	attempted := map[int]bool{radius: true}
	lastRadius := radius

	c.Logger.Info("starting venue search",
		"midpoint_lat", mid.Coordinate.Latitude,
		"midpoint_lng", mid.Coordinate.Longitude,
		"radius_m", radius,
		"categories", categories)

	raws, err := c.fanOut(ctx, mid.Coordinate, radius, categories)
	if err != nil {
		return c.fail(err)
	}

	if len(raws) == 0 {
		for _, tier := range escalationRadiiMeters {
			r := clampRadius(tier)
			if attempted[r] {
				continue
			}
			attempted[r] = true
			lastRadius = r

			metrics.RadiusEscalations.Inc()
			c.Logger.Info("no venues found, escalating search radius", "radius_m", r)

			raws, err = c.fanOut(ctx, mid.Coordinate, r, categories)
			if err != nil {
				return c.fail(err)
			}
			if len(raws) > 0 {
				break
			}
		}
	}

	venues := c.collect(raws, mid)
	metrics.VenuesPerSearch.Observe(float64(len(venues)))

	if len(venues) == 0 {
		metrics.SearchOutcomes.WithLabelValues(StatusEmpty.String()).Inc()
		return Result{
			Status:       StatusEmpty,
			RadiusMeters: lastRadius,
			Message:      fmt.Sprintf("no venues found within %d m of the midpoint", lastRadius),
		}, nil
	}

	metrics.SearchOutcomes.WithLabelValues(StatusSuccess.String()).Inc()
	return Result{
		Status:       StatusSuccess,
		Venues:       venues,
		RadiusMeters: lastRadius,
	}, nil
}

// fanOut issues one provider call per category concurrently and merges the
// pages. The first failed leg cancels the rest and fails the fan-out.
func (c *Coordinator) fanOut(ctx context.Context, center models.Coordinate, radiusMeters int, categories []string) ([]places.RawVenue, error) {
	g, ctx := errgroup.WithContext(ctx)
	perCategory := make([][]places.RawVenue, len(categories))

	for i, category := range categories {
		g.Go(func() error {
			found, err := c.Provider.SearchNearby(ctx, center, radiusMeters, category)
			if err != nil {
				return &Error{Category: category, Err: err}
			}
			perCategory[i] = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []places.RawVenue
	for _, page := range perCategory {
		merged = append(merged, page...)
	}
	return merged, nil
}

// collect parses the merged raw records, drops malformed ones, collapses
// duplicates (first seen wins), and attaches each survivor's distance from
// the midpoint.
func (c *Coordinator) collect(raws []places.RawVenue, mid models.Location) []models.Venue {
	seen := make(map[string]bool, len(raws))
	venues := make([]models.Venue, 0, len(raws))

	for _, raw := range raws {
		v, err := places.ParseVenue(raw)
		if err != nil {
			c.Logger.Warn("skipping malformed venue record", "error", err)
			continue
		}

		key := places.DedupeKey(v)
		if seen[key] {
			continue
		}
		seen[key] = true

		v.DistanceFromMidpointKm = geo.HaversineDistanceKm(mid.Coordinate, v.Coordinate)
		venues = append(venues, v)
	}

	return venues
}

func (c *Coordinator) fail(err error) (Result, error) {
	metrics.SearchOutcomes.WithLabelValues(StatusFailed.String()).Inc()
	c.Logger.Error("venue search failed", "error", err)

	var searchErr *Error
	if se, ok := err.(*Error); ok {
		searchErr = se
	}
	opts := report.SentryReportOptions{Level: sentry.LevelError}
	if searchErr != nil {
		opts.Tags = utils.MakeMap("category", searchErr.Category)
	}
	report.ReportErrorWithSentryOptions(err, opts)

	return Result{Status: StatusFailed}, err
}
