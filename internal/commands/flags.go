package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/shelf/internal/core/config"
	"github.com/colonyops/shelf/internal/core/library"
	"github.com/colonyops/shelf/internal/core/recents"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	LibraryDir string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Library holds the parsed document index
	Library *library.Library

	// Recents tracks recently opened documents
	Recents recents.Store
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shelf", "config.yaml")
}

// DefaultLibraryDir returns the default library directory using XDG_DATA_HOME.
func DefaultLibraryDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shelf")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/shelf/shelf.log
// On Linux: $XDG_STATE_HOME/shelf/shelf.log (defaults to ~/.local/state/shelf/shelf.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "shelf", "shelf.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "shelf", "shelf.log")
	}

	return filepath.Join(home, ".local", "state", "shelf", "shelf.log")
}
