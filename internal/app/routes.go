package app

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"halfway.meetspot.org/internal/middleware"

	"github.com/julienschmidt/httprouter"
)

// Routes registers all handlers on a new httprouter instance and wraps it
// with the Sentry and security-header middlewares.
//
// Registered routes:
//   - POST /v1/midpoint: compute the midpoint and fairness for two locations.
//   - POST /v1/venues/search: run a full venue search around the midpoint.
//   - POST /v1/sessions/:id/filters: toggle a category filter on a session.
//   - POST /v1/sessions/:id/sort: change a session's sort order.
//   - GET  /v1/autocomplete: place name suggestions for a partial query.
//   - GET  /v1/geocode: resolve an address to coordinates.
//   - GET  /v1/geocode/reverse: resolve coordinates to an address.
//   - GET  /v1/healthcheck: health and readiness snapshot.
//   - GET  /metrics: Prometheus exposition, served through a cached handler
//     to keep scrape overhead flat.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodPost, "/v1/midpoint", app.midpointHandler)
	router.HandlerFunc(http.MethodPost, "/v1/venues/search", app.venueSearchHandler)
	router.Handle(http.MethodPost, "/v1/sessions/:id/filters", app.sessionFiltersHandler)
	router.Handle(http.MethodPost, "/v1/sessions/:id/sort", app.sessionSortHandler)
	router.HandlerFunc(http.MethodGet, "/v1/autocomplete", app.autocompleteHandler)
	router.HandlerFunc(http.MethodGet, "/v1/geocode", app.geocodeHandler)
	router.HandlerFunc(http.MethodGet, "/v1/geocode/reverse", app.reverseGeocodeHandler)
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
