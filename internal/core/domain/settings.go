package domain

import (
	"strconv"
	"time"
)

// Configuration keys, flattened from the TOML file.
const (
	SettingServerURL         = "server.url"
	SettingServerTimeout     = "server.timeout_seconds"
	SettingRequestsPerSecond = "server.requests_per_second"
	SettingBreakerFailures   = "server.breaker_failures"
	SettingSearchResults     = "search.n_results"
	SettingResetDelay        = "upload.reset_delay_ms"
	SettingStorageDir        = "storage.dir"
)

// Default setting values.
const (
	DefaultServerURL         = "http://localhost:8000"
	DefaultServerTimeout     = 120 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBreakerFailures   = 5
	DefaultResetDelay        = 2 * time.Second
)

// AppSettings holds all application settings.
type AppSettings struct {
	// ServerURL is the base URL of the classification service.
	ServerURL string

	// Timeout bounds every HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64

	// BreakerFailures is the number of consecutive transport failures
	// that opens the circuit. Zero disables the breaker.
	BreakerFailures int

	// SearchResults is the n_results sent with every search.
	SearchResults int

	// ResetDelay is how long a successful upload stays visible before
	// the upload controller returns to idle.
	ResetDelay time.Duration

	// StorageDir holds the local database. Empty means the default.
	StorageDir string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ServerURL:         DefaultServerURL,
		Timeout:           DefaultServerTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		BreakerFailures:   DefaultBreakerFailures,
		SearchResults:     DefaultSearchResults,
		ResetDelay:        DefaultResetDelay,
	}
}

// SettingKeys returns every recognised configuration key.
func SettingKeys() []string {
	return []string{
		SettingServerURL,
		SettingServerTimeout,
		SettingRequestsPerSecond,
		SettingBreakerFailures,
		SettingSearchResults,
		SettingResetDelay,
		SettingStorageDir,
	}
}

// Value formats the setting for key as it would be typed back in.
// Unknown keys yield "".
func (s *AppSettings) Value(key string) string {
	switch key {
	case SettingServerURL:
		return s.ServerURL
	case SettingServerTimeout:
		return strconv.Itoa(int(s.Timeout / time.Second))
	case SettingRequestsPerSecond:
		return strconv.FormatFloat(s.RequestsPerSecond, 'f', -1, 64)
	case SettingBreakerFailures:
		return strconv.Itoa(s.BreakerFailures)
	case SettingSearchResults:
		return strconv.Itoa(s.SearchResults)
	case SettingResetDelay:
		return strconv.Itoa(int(s.ResetDelay / time.Millisecond))
	case SettingStorageDir:
		return s.StorageDir
	default:
		return ""
	}
}
