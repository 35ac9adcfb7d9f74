package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	DisplayConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetDataFolder() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Display
}

// FileConfig mirrors config.yaml. Every field maps onto the environment variable of the same
// meaning; the environment always wins over the file.
type FileConfig struct {
	AppName    string `yaml:"app_name"`
	Env        string `yaml:"env"`
	LogLevel   string `yaml:"log_level"`
	DataFolder string `yaml:"data_folder"`

	APIURL  string `yaml:"api_url"`
	Host    string `yaml:"host"`
	Timeout string `yaml:"timeout"`

	Storage           string `yaml:"storage"`
	StoragePassphrase string `yaml:"storage_passphrase"`

	Locale   string `yaml:"locale"`
	Timezone string `yaml:"timezone"`
}

func (f FileConfig) defaults() map[string]string {
	return map[string]string{
		appNameVar:           f.AppName,
		envVar:               f.Env,
		logLevelVar:          f.LogLevel,
		folderEnvVar:         f.DataFolder,
		apiURLVar:            f.APIURL,
		hostVar:              f.Host,
		timeoutVar:           f.Timeout,
		storageVar:           f.Storage,
		storagePassphraseVar: f.StoragePassphrase,
		localeVar:            f.Locale,
		timezoneVar:          f.Timezone,
	}
}

// New returns a Config backed by the environment only.
func New() Config {
	return newConfig(FileConfig{})
}

// Load reads the YAML config file at path (default ~/.config/gobarber/config.yaml) and layers the
// environment over it. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".config", "gobarber", "config.yaml")
		}
	}

	var fc FileConfig
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return newConfig(fc), nil
}

func newConfig(fc FileConfig) Config {
	env := EnvVars{defaults: fc.defaults()}
	return mainConfig{
		EnvVars: env,
		API:     API{env: env},
		Storage: Storage{env: env},
		Display: Display{env: env},
	}
}
