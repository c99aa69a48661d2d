package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"halfway.meetspot.org/internal/geo"
	"halfway.meetspot.org/internal/metrics"
	"halfway.meetspot.org/internal/midpoint"
	"halfway.meetspot.org/internal/models"
	"halfway.meetspot.org/internal/places"
	"halfway.meetspot.org/internal/present"
	"halfway.meetspot.org/internal/search"
)

// maxRequestBody caps JSON request bodies at 64 KB. Requests here carry two
// locations and a handful of options; anything larger is malformed.
const maxRequestBody = 64 << 10

// HealthStatus is the JSON payload returned by /v1/healthcheck. The
// application is considered ready once a places provider API key is
// configured.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Ready       bool   `json:"ready"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	settings := app.ConfigService.Config.GetSettings()
	ready := settings.Provider.APIKey != ""

	status := HealthStatus{
		Status:      "available",
		Environment: app.ConfigService.Config.Env,
		Version:     app.Version,
		Ready:       ready,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusInternalServerError
	}
	app.writeJSON(w, code, status)
}

type midpointRequest struct {
	LocationA models.Location `json:"location_a"`
	LocationB models.Location `json:"location_b"`
	WeightA   *float64        `json:"weight_a"`
	WeightB   *float64        `json:"weight_b"`
}

// fairnessView is the wire form of a fairness metric. Distances are in miles.
type fairnessView struct {
	DistanceFromAMiles float64 `json:"distance_from_a_miles"`
	DistanceFromBMiles float64 `json:"distance_from_b_miles"`
	DeltaMiles         float64 `json:"delta_miles"`
	Label              string  `json:"label"`
}

type midpointResponse struct {
	Midpoint       models.Location `json:"midpoint"`
	DistanceKm     float64         `json:"distance_km"`
	Fairness       fairnessView    `json:"fairness"`
	TravelMinutesA int             `json:"travel_minutes_a"`
	TravelMinutesB int             `json:"travel_minutes_b"`
}

// computeMidpoint resolves the midpoint for a request, weighted when either
// weight is supplied.
func computeMidpoint(req midpointRequest) (models.Location, error) {
	var mid models.Location
	var err error
	if req.WeightA != nil || req.WeightB != nil {
		weightA, weightB := 1.0, 1.0
		if req.WeightA != nil {
			weightA = *req.WeightA
		}
		if req.WeightB != nil {
			weightB = *req.WeightB
		}
		mid, err = midpoint.Weighted(req.LocationA, req.LocationB, weightA, weightB)
	} else {
		mid, err = midpoint.Geographic(req.LocationA, req.LocationB)
	}
	if err != nil {
		return models.Location{}, err
	}
	metrics.MidpointsComputed.Inc()
	return mid, nil
}

func (app *Application) midpointHandler(w http.ResponseWriter, r *http.Request) {
	var req midpointRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	mid, err := computeMidpoint(req)
	if err != nil {
		app.domainError(w, err)
		return
	}

	fairness := midpoint.Fairness(&req.LocationA, &req.LocationB, &mid)
	app.writeJSON(w, http.StatusOK, midpointResponse{
		Midpoint:   mid,
		DistanceKm: midpoint.DistanceKm(req.LocationA, req.LocationB),
		Fairness: fairnessView{
			DistanceFromAMiles: fairness.DistanceFromAMiles,
			DistanceFromBMiles: fairness.DistanceFromBMiles,
			DeltaMiles:         fairness.DeltaMiles,
			Label:              fairness.Label,
		},
		TravelMinutesA: present.EstimateTravelMinutes(midpoint.DistanceKm(req.LocationA, mid)),
		TravelMinutesB: present.EstimateTravelMinutes(midpoint.DistanceKm(req.LocationB, mid)),
	})
}

type venueSearchRequest struct {
	midpointRequest
	Categories []string `json:"categories"`
	SessionID  string   `json:"session_id"`
}

// venueView decorates a venue with presentation fields derived on the way
// out: an estimated walk time from the midpoint and human-readable category
// names.
type venueView struct {
	models.Venue
	TravelMinutes int      `json:"travel_minutes"`
	CategoryNames []string `json:"category_names,omitempty"`
}

type venueSearchResponse struct {
	SessionID    string          `json:"session_id,omitempty"`
	Status       search.Status   `json:"status"`
	Midpoint     models.Location `json:"midpoint"`
	RadiusMeters int             `json:"radius_meters"`
	Message      string          `json:"message,omitempty"`
	Fairness     fairnessView    `json:"fairness"`
	Venues       []venueView     `json:"venues"`
}

func venueViews(venues []models.Venue) []venueView {
	views := make([]venueView, 0, len(venues))
	for _, v := range venues {
		names := make([]string, 0, len(v.Categories))
		for _, tag := range v.Categories {
			names = append(names, present.CategoryDisplayName(tag))
		}
		views = append(views, venueView{
			Venue:         v,
			TravelMinutes: present.EstimateTravelMinutes(v.DistanceFromMidpointKm),
			CategoryNames: names,
		})
	}
	return views
}

func (app *Application) venueSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req venueSearchRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	mid, err := computeMidpoint(req.midpointRequest)
	if err != nil {
		app.domainError(w, err)
		return
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = app.DefaultCategories()
	}

	result, err := app.Coordinator.Search(r.Context(), mid, req.LocationA, req.LocationB, categories)
	if err != nil {
		app.domainError(w, err)
		return
	}

	if req.SessionID != "" {
		app.Sessions.Get(req.SessionID).SetResults(result.Venues)
	}

	fairness := midpoint.Fairness(&req.LocationA, &req.LocationB, &mid)
	app.writeJSON(w, http.StatusOK, venueSearchResponse{
		SessionID:    req.SessionID,
		Status:       result.Status,
		Midpoint:     mid,
		RadiusMeters: result.RadiusMeters,
		Message:      result.Message,
		Fairness: fairnessView{
			DistanceFromAMiles: fairness.DistanceFromAMiles,
			DistanceFromBMiles: fairness.DistanceFromBMiles,
			DeltaMiles:         fairness.DeltaMiles,
			Label:              fairness.Label,
		},
		Venues: venueViews(result.Venues),
	})
}

type sessionViewResponse struct {
	SessionID string      `json:"session_id"`
	Venues    []venueView `json:"venues"`
}

func (app *Application) sessionFiltersHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		Category string `json:"category"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Category == "" {
		app.errorResponse(w, http.StatusBadRequest, "category must be provided")
		return
	}

	s := app.Sessions.Get(ps.ByName("id"))
	s.ToggleCategory(req.Category)
	app.writeJSON(w, http.StatusOK, sessionViewResponse{
		SessionID: s.ID,
		Venues:    venueViews(s.View()),
	})
}

func (app *Application) sessionSortHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		Sort string `json:"sort"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}

	option, ok := models.ParseSortOption(req.Sort)
	if !ok {
		app.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown sort option %q", req.Sort))
		return
	}

	s := app.Sessions.Get(ps.ByName("id"))
	s.SetSortOption(option)
	app.writeJSON(w, http.StatusOK, sessionViewResponse{
		SessionID: s.ID,
		Venues:    venueViews(s.View()),
	})
}

func (app *Application) autocompleteHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		app.errorResponse(w, http.StatusBadRequest, "query must be provided")
		return
	}

	suggestions, err := app.Provider.Autocomplete(r.Context(), query)
	if err != nil {
		app.domainError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, struct {
		Suggestions []places.Suggestion `json:"suggestions"`
	}{Suggestions: suggestions})
}

func (app *Application) geocodeHandler(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		app.errorResponse(w, http.StatusBadRequest, "address must be provided")
		return
	}

	location, err := app.Provider.Geocode(r.Context(), address)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, location)
}

func (app *Application) reverseGeocodeHandler(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		app.errorResponse(w, http.StatusBadRequest, "lat and lng must be decimal degrees")
		return
	}

	coord := models.Coordinate{Latitude: lat, Longitude: lng}
	if err := geo.ValidateCoordinate(coord); err != nil {
		app.domainError(w, err)
		return
	}

	location, err := app.Provider.ReverseGeocode(r.Context(), coord)
	if err != nil {
		app.domainError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, location)
}

// readJSON decodes the request body into dst, rejecting oversized bodies and
// trailing garbage. It writes the error response itself and reports whether
// decoding succeeded.
func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		app.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if dec.More() {
		app.errorResponse(w, http.StatusBadRequest, "request body must contain a single JSON object")
		return false
	}
	return true
}

func (app *Application) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("Failed to encode response", "error", err)
	}
}

func (app *Application) errorResponse(w http.ResponseWriter, code int, message string) {
	app.writeJSON(w, code, struct {
		Error string `json:"error"`
	}{Error: message})
}

// domainError maps domain errors onto HTTP status codes: validation failures
// become 422, upstream provider failures become 502, everything else 500.
func (app *Application) domainError(w http.ResponseWriter, err error) {
	var searchErr *search.Error
	var statusErr *places.StatusError

	switch {
	case errors.Is(err, geo.ErrInvalidCoordinate), errors.Is(err, midpoint.ErrInvalidWeight):
		app.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &searchErr), errors.As(err, &statusErr):
		app.errorResponse(w, http.StatusBadGateway, err.Error())
	default:
		app.Logger.Error("Unhandled error", "error", err)
		app.errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
