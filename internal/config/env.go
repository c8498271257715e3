package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded, when present, before the configuration is expanded.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads variables from the env files found in dir. Variables
// already set in the process environment are not overridden. It returns the
// files that were loaded.
func loadEnvFiles(dir string) ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
