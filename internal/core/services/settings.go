package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		ServerURL:         s.getString(domain.SettingServerURL, defaults.ServerURL),
		Timeout:           s.getSeconds(domain.SettingServerTimeout, defaults.Timeout),
		RequestsPerSecond: s.getFloat(domain.SettingRequestsPerSecond, defaults.RequestsPerSecond),
		BreakerFailures:   s.getInt(domain.SettingBreakerFailures, defaults.BreakerFailures),
		SearchResults:     s.getInt(domain.SettingSearchResults, defaults.SearchResults),
		ResetDelay:        s.getMillis(domain.SettingResetDelay, defaults.ResetDelay),
		StorageDir:        s.configStore.GetString(domain.SettingStorageDir),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{domain.SettingServerURL, settings.ServerURL},
		{domain.SettingServerTimeout, int(settings.Timeout / time.Second)},
		{domain.SettingRequestsPerSecond, settings.RequestsPerSecond},
		{domain.SettingBreakerFailures, settings.BreakerFailures},
		{domain.SettingSearchResults, settings.SearchResults},
		{domain.SettingResetDelay, int(settings.ResetDelay / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.StorageDir != "" {
		if err := s.configStore.Set(domain.SettingStorageDir, settings.StorageDir); err != nil {
			return fmt.Errorf("save %s: %w", domain.SettingStorageDir, err)
		}
	}
	return nil
}

// Set parses value for a single key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case domain.SettingServerURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q is not an absolute URL", key, value)
		}
		parsed = strings.TrimRight(value, "/")
	case domain.SettingStorageDir:
		parsed = value
	case domain.SettingRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid %s: %q", key, value)
		}
		parsed = f
	case domain.SettingServerTimeout, domain.SettingSearchResults:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s: %q must be a positive integer", key, value)
		}
		parsed = n
	case domain.SettingBreakerFailures, domain.SettingResetDelay:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q must be a non-negative integer", key, value)
		}
		parsed = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	n := s.configStore.GetInt(key)
	if n <= 0 {
		return defaultVal
	}
	return time.Duration(n) * time.Second
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	n := s.configStore.GetInt(key)
	if n <= 0 {
		return defaultVal
	}
	return time.Duration(n) * time.Millisecond
}
