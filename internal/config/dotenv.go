package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const maxEnvSearchDepth = 6

// LoadDotEnv loads the nearest .env from the working directory or its
// parents. Variables already set in the environment are kept. It returns
// the file used, or "" when none was found.
func LoadDotEnv() (string, error) {
	path, err := findEnvFile()
	if err != nil || path == "" {
		return "", err
	}
	if err := godotenv.Load(path); err != nil {
		return path, err
	}
	return path, nil
}

func findEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for i := 0; i < maxEnvSearchDepth; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}
