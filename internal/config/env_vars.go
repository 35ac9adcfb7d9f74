package config

import (
	"os"
)

const (
	appNameVar   = "APP_NAME"
	envVar       = "ENV"
	logLevelVar  = "LOG_LEVEL"
	folderEnvVar = "GOBARBER_DATA_FOLDER"
)

type EnvVars struct {
	defaults map[string]string // values from config.yaml, keyed by env var name
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.get(appNameVar, "GoBarber")
}

func (e EnvVars) GetEnv() string {
	return e.get(envVar, "DEV")
}

func (e EnvVars) GetLogLevel() string {
	return e.get(logLevelVar, "info")
}

// GetDataFolder returns the folder holding the persisted session (default ~/.gobarber).
func (e EnvVars) GetDataFolder() string {
	fallback := "./data"
	if home, err := os.UserHomeDir(); err == nil {
		fallback = home + string(os.PathSeparator) + ".gobarber"
	}
	return e.get(folderEnvVar, fallback)
}

// get resolves envVar from the environment, then config.yaml, then defaultValue.
func (e EnvVars) get(envVar, defaultValue string) string {
	if v := e.defaults[envVar]; v != "" {
		defaultValue = v
	}
	return GetEnv(envVar, defaultValue)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
