package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"halfway.meetspot.org/internal/app"
	"halfway.meetspot.org/internal/config"
	"halfway.meetspot.org/internal/report"
)

const version = "1.0.0"

// maxConfigRetries bounds the backoff loop when fetching remote settings.
const maxConfigRetries = 5

func main() {
	// A missing .env file is fine; environment variables may come from the
	// deployment instead.
	_ = godotenv.Load()

	var (
		port = flag.Int("port", 4000, "API server port")
		env  = flag.String("env", "development", "Environment (development|staging|production)")

		configFile = flag.String("config-file", "", "Path to a local JSON configuration file")
		configURL  = flag.String("config-url", "", "URL to a remote JSON configuration file")
	)

	flag.Parse()

	configAuthUser := os.Getenv("CONFIG_AUTH_USER")
	configAuthPass := os.Getenv("CONFIG_AUTH_PASS")

	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(*env, version)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := app.NewPooledClient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var settings config.Settings
	var err error
	if *configFile != "" {
		settings, err = config.LoadConfigFromFile(*configFile)
	} else {
		settings, err = config.LoadConfigFromURL(ctx, client, *configURL, configAuthUser, configAuthPass, maxConfigRetries)
	}
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The API key can be injected via the environment so that config files
	// checked into version control never carry credentials.
	if key := os.Getenv("PLACES_API_KEY"); key != "" {
		settings.Provider.APIKey = key
	}
	if settings.Provider.APIKey == "" {
		fmt.Println("Error: No places API key configured. Set provider.api_key or PLACES_API_KEY.")
		os.Exit(1)
	}

	cfg := config.NewConfig(*port, *env, settings)
	application := app.New(cfg, logger, client, version)

	// If a remote URL is specified, refresh the settings every minute.
	if *configURL != "" {
		go application.ConfigService.RefreshConfig(ctx, *configURL, configAuthUser, configAuthPass, time.Minute, maxConfigRetries)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}
