package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-barber-client/internal/config"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	fakekv "github.com/jrsteele09/go-barber-client/storage/repofake"
)

const (
	sessionFile = "session.json"
	sqliteFile  = "session.db"
)

// Open returns the backend named by cfg, rooted in its data folder.
func Open(cfg config.Config) (Repo, error) {
	dir := cfg.GetDataFolder()
	backend := cfg.GetStorageBackend()
	if backend != config.StorageMemory {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create data folder: %w", err)
		}
	}

	switch backend {
	case config.StorageFile:
		return NewFileStore(filepath.Join(dir, sessionFile), cfg.GetStoragePassphrase()), nil
	case config.StorageSQLite:
		return NewSQLiteStore(filepath.Join(dir, sqliteFile))
	case config.StorageMemory:
		return fakekv.NewFakeKVRepo(), nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnknownStorage, "storage %q", backend)
	}
}
