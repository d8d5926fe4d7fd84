package backend

import (
	"fmt"
	"time"

	"kharcha/internal/config"
)

// Config holds what the factory needs to build a store.
type Config struct {
	Type StoreType

	// SQLite specific
	SQLiteDBPath string

	// Remote record store specific
	RemoteBaseURL string
	RemoteTimeout time.Duration

	// File store specific
	DataFile string
}

// FromAppConfig converts the application config to a store config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	storeType := StoreType(appConfig.StoreBackend)
	if !storeType.IsValid() {
		return Config{}, fmt.Errorf("invalid store backend in config: %s", appConfig.StoreBackend)
	}

	return Config{
		Type:          storeType,
		SQLiteDBPath:  appConfig.SQLiteDBPath,
		RemoteBaseURL: appConfig.RemoteBaseURL,
		RemoteTimeout: appConfig.RemoteTimeout,
		DataFile:      appConfig.DataFile,
	}, nil
}

// Validate checks the configuration for the selected store type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid store type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteStore:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite store")
		}
	case RemoteStore:
		if c.RemoteBaseURL == "" {
			return fmt.Errorf("remote base URL is required for remote store")
		}
	case FileStore:
		if c.DataFile == "" {
			return fmt.Errorf("data file path is required for file store")
		}
	}

	return nil
}
