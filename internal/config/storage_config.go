package config

import "strings"

const (
	storageVar           = "GOBARBER_STORAGE"
	storagePassphraseVar = "GOBARBER_STORAGE_PASSPHRASE"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type StorageConfig interface {
	GetStorageBackend() string
	GetStoragePassphrase() string
}

type Storage struct {
	env EnvVars
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() string {
	return strings.ToLower(s.env.get(storageVar, StorageFile))
}

// GetStoragePassphrase seals the file store when non-empty.
func (s Storage) GetStoragePassphrase() string {
	return s.env.get(storagePassphraseVar, "")
}
