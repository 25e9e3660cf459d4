package config

import (
	"os"
	"path/filepath"
)

// Name is the tool name used for the default config file.
const Name = "google-form-templater"

// DefaultPath returns ~/.config/google-form-templater.conf.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".config", Name+".conf")
	}
	return filepath.Join(home, ".config", Name+".conf")
}
