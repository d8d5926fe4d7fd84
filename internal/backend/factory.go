package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kharcha/internal/localstore"
	"kharcha/internal/remote"
	"kharcha/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a store factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateStore implements Factory.CreateStore.
func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteStore:
		return f.createSQLiteStore(config)
	case RemoteStore:
		return f.createRemoteStore(config)
	case FileStore:
		return f.createFileStore(config)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite store", "db_path", config.SQLiteDBPath)

	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createRemoteStore(config Config) (*Result, error) {
	cli, err := remote.NewClient(config.RemoteBaseURL, config.RemoteTimeout)
	if err != nil {
		return nil, fmt.Errorf("initialize remote store client: %w", err)
	}

	f.logger.Info("Initialized remote store",
		"base_url", config.RemoteBaseURL,
		"timeout", config.RemoteTimeout)

	return &Result{Store: cli, Cleanup: nil}, nil
}

func (f *DefaultFactory) createFileStore(config Config) (*Result, error) {
	store, err := localstore.Open(config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("open file store: %w", err)
	}

	f.logger.Info("Initialized file store", "data_file", config.DataFile)

	return &Result{Store: store, Cleanup: nil}, nil
}
