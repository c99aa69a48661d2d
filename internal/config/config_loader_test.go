package config

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFromFile(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		content := `{
		"provider": {
			"base_url": "https://maps.example.com",
			"api_key": "test-key"
		},
		"default_categories": ["cafe", "restaurant", "bar"]
		}`
		tmpFile, err := os.CreateTemp("", "config-*.json")
		if err != nil {
			t.Fatalf("Failed to create temporary file: %v", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to temporary file: %v", err)
		}
		tmpFile.Close()

		settings, err := loadConfigFromFile(tmpFile.Name())
		if err != nil {
			t.Fatalf("loadConfigFromFile failed: %v", err)
		}

		expected := ProviderSettings{
			BaseURL: "https://maps.example.com",
			APIKey:  "test-key",
		}
		if settings.Provider != expected {
			t.Errorf("Expected provider %+v, got %+v", expected, settings.Provider)
		}
		if len(settings.DefaultCategories) != 3 || settings.DefaultCategories[0] != "cafe" {
			t.Errorf("Unexpected default categories: %v", settings.DefaultCategories)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		content := `{ this is not valid JSON }`
		tmpFile, err := os.CreateTemp("", "invalid-config-*.json")
		if err != nil {
			t.Fatalf("Failed to create temporary file: %v", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to temporary file: %v", err)
		}
		tmpFile.Close()

		_, err = loadConfigFromFile(tmpFile.Name())
		if err == nil {
			t.Errorf("Expected error with invalid JSON, got none")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := loadConfigFromFile("non-existent-file.json")
		if err == nil {
			t.Errorf("Expected error for non-existent file, got none")
		}
	})
}

func TestLoadConfigFromURL(t *testing.T) {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	ctx := context.Background()

	t.Run("ValidResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
			"provider": {
				"base_url": "https://maps.example.com",
				"api_key": "test-key"
			},
			"default_categories": ["cafe", "bar"]
			}`))
		}))
		defer ts.Close()

		settings, err := loadConfigFromURL(ctx, client, ts.URL, "user", "pass", 1)
		if err != nil {
			t.Fatalf("loadConfigFromURL failed: %v", err)
		}

		if settings.Provider.APIKey != "test-key" {
			t.Errorf("Expected api key test-key, got %q", settings.Provider.APIKey)
		}
		if len(settings.DefaultCategories) != 2 {
			t.Errorf("Expected 2 default categories, got %d", len(settings.DefaultCategories))
		}
	})

	t.Run("BasicAuthForwarded", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "user" || pass != "pass" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"provider": {"base_url": "", "api_key": "k"}}`))
		}))
		defer ts.Close()

		_, err := loadConfigFromURL(ctx, client, ts.URL, "user", "pass", 1)
		if err != nil {
			t.Errorf("Expected basic auth to be forwarded, got error: %v", err)
		}
	})

	t.Run("ErrorResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		_, err := loadConfigFromURL(ctx, client, ts.URL, "", "", 1)
		if err == nil {
			t.Errorf("Expected error with 500 response, got none")
		}
	})

	t.Run("InvalidJSONResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{ this is not valid JSON }`))
		}))
		defer ts.Close()

		_, err := loadConfigFromURL(ctx, client, ts.URL, "", "", 1)
		if err == nil {
			t.Errorf("Expected error for invalid JSON response, got none")
		}
	})

	t.Run("InvalidURL", func(t *testing.T) {
		_, err := loadConfigFromURL(ctx, client, "://invalid-url", "", "", 1)
		if err == nil || !strings.Contains(err.Error(), "failed to create request") {
			t.Errorf("Expected request creation error, got: %v", err)
		}
	})
}

func TestDoWithBackoff(t *testing.T) {
	t.Run("RetriesOnServerError", func(t *testing.T) {
		rt := &mockRoundTripper{
			handler: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewReader(nil)),
				}, nil
			},
		}
		client := &http.Client{Transport: rt}

		req, _ := http.NewRequest("GET", "http://example.com/config.json", nil)
		_, err := DoWithBackoff(context.Background(), client, req, 2)
		if err == nil {
			t.Fatal("Expected error after exhausting retries, got none")
		}
		if rt.calls != 2 {
			t.Errorf("Expected 2 attempts, got %d", rt.calls)
		}
	})

	t.Run("SucceedsAfterTransientFailure", func(t *testing.T) {
		rt := &mockRoundTripper{
			handler: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewReader([]byte(`{}`))),
				}, nil
			},
		}
		failures := 1
		first := rt.handler
		rt.handler = func(req *http.Request) (*http.Response, error) {
			if failures > 0 {
				failures--
				return nil, fmt.Errorf("connection reset")
			}
			return first(req)
		}
		client := &http.Client{Transport: rt}

		req, _ := http.NewRequest("GET", "http://example.com/config.json", nil)
		resp, err := DoWithBackoff(context.Background(), client, req, 3)
		if err != nil {
			t.Fatalf("Expected success after retry, got: %v", err)
		}
		resp.Body.Close()
		if rt.calls != 2 {
			t.Errorf("Expected 2 attempts, got %d", rt.calls)
		}
	})

	t.Run("StopsWhenContextCanceled", func(t *testing.T) {
		rt := &mockRoundTripper{
			handler: func(req *http.Request) (*http.Response, error) {
				return nil, fmt.Errorf("unreachable")
			},
		}
		client := &http.Client{Transport: rt}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		req, _ := http.NewRequest("GET", "http://example.com/config.json", nil)
		_, err := DoWithBackoff(ctx, client, req, 5)
		if err == nil {
			t.Fatal("Expected error on canceled context, got none")
		}
		if !errors.Is(err, context.Canceled) && rt.calls > 1 {
			t.Errorf("Expected at most one attempt before cancellation, got %d", rt.calls)
		}
	})
}

func TestUpdateAndGetSettings(t *testing.T) {
	cfg := NewConfig(4000, "test", Settings{
		Provider:          ProviderSettings{APIKey: "old"},
		DefaultCategories: []string{"cafe"},
	})

	cfg.UpdateSettings(Settings{
		Provider:          ProviderSettings{APIKey: "new"},
		DefaultCategories: []string{"bar", "restaurant"},
	})

	settings := cfg.GetSettings()
	if settings.Provider.APIKey != "new" {
		t.Errorf("Expected api key new, got %q", settings.Provider.APIKey)
	}

	settings.DefaultCategories[0] = "mutated"
	if cfg.GetSettings().DefaultCategories[0] != "bar" {
		t.Error("GetSettings should return a copy of the categories slice")
	}
}

func TestValidateConfigFlags(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		configURL   string
		extraArgs   []string
		expectError bool
	}{
		{"No config", "", "", nil, true},
		{"Valid local config", "config.json", "", nil, false},
		{"Valid remote config", "", "http://example.com/config.json", nil, false},
		{"Both config file and URL", "config.json", "http://example.com/config.json", nil, true},
		{"Config file with extra args", "config.json", "", []string{"extraArg"}, true},
		{"Config URL with extra args", "", "http://example.com/config.json", []string{"extraArg"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(tt.name, flag.ContinueOnError)
			var output bytes.Buffer
			flag.CommandLine.SetOutput(&output)

			configFile := flag.String("config-file", "", "Path to config file")
			configURL := flag.String("config-url", "", "URL to config")

			args := []string{"cmd"}
			if tt.configFile != "" {
				args = append(args, "--config-file="+tt.configFile)
			}
			if tt.configURL != "" {
				args = append(args, "--config-url="+tt.configURL)
			}
			args = append(args, tt.extraArgs...)

			os.Args = args
			flag.CommandLine.Parse(args[1:])

			err := ValidateConfigFlags(configFile, configURL)

			if (err != nil) != tt.expectError {
				t.Errorf("Expected error: %v, got: %v", tt.expectError, err)
			}
		})
	}
}
