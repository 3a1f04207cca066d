package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If STACKER_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.stacker/logs/stacker.log
func GetLogFilePath() string {
	if customPath := os.Getenv("STACKER_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "stacker.log"
	}

	return filepath.Join(homeDir, ".stacker", "logs", "stacker.log")
}
