package app

import (
	"log/slog"
	"net/http"

	"halfway.meetspot.org/internal/config"
	"halfway.meetspot.org/internal/places"
	"halfway.meetspot.org/internal/search"
	"halfway.meetspot.org/internal/session"
)

// Application wires all dependencies together: the configuration service,
// the places provider, the venue search coordinator, the session store,
// logger, and the application version.
type Application struct {
	ConfigService *config.ConfigService
	Provider      places.Provider
	Coordinator   *search.Coordinator
	Sessions      *session.Store
	Logger        *slog.Logger
	Version       string
}

// New creates and wires all dependencies for the Application.
// Accepts config, logger, client, and version as arguments.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	configService := config.NewConfigService(logger, client, cfg)

	// The provider reads credentials through the config on every request so
	// that a refreshed API key or base URL takes effect without a restart.
	provider := places.NewClientFunc(func() (string, string) {
		settings := cfg.GetSettings().Provider
		return settings.APIKey, settings.BaseURL
	}, client)
	coordinator := search.NewCoordinator(provider, logger)

	return &Application{
		ConfigService: configService,
		Provider:      provider,
		Coordinator:   coordinator,
		Sessions:      session.NewStore(),
		Logger:        logger,
		Version:       version,
	}
}

// DefaultCategories returns the configured category set, falling back to the
// built-in defaults when the settings omit them.
func (app *Application) DefaultCategories() []string {
	if categories := app.ConfigService.Config.GetSettings().DefaultCategories; len(categories) > 0 {
		return categories
	}
	return session.DefaultCategories
}
