package driving

import "github.com/custodia-labs/docvec/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment overrides applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set validates and stores one setting by its config key.
	Set(key, value string) error

	// Value returns the effective value of one config key as text.
	Value(key string) (string, error)

	// Keys returns every settable config key.
	Keys() []string

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error

	// ConfigPath returns the path of the configuration file.
	ConfigPath() string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
