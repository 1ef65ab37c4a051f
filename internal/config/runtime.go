package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves MEMO_RUNTIME_PATH, relative paths being taken
// from the user's home directory.
func GetRuntimePath() string {
	path := os.Getenv("MEMO_RUNTIME_PATH")
	if path == "" {
		path = ".memobot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetEnvFilePath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}
