package storage

import (
	"encoding/json"
	"errors"
	"os"
)

// readFile reads path; a missing file yields nil data and no error.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// writeFile writes via a temp file then rename so readers never see a torn file.
func writeFile(path string, b []byte, mode os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func encodeEntries(entries map[string]string) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}

func decodeEntries(b []byte) (map[string]string, error) {
	entries := make(map[string]string)
	if len(b) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
