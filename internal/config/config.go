package config

import (
	"log/slog"
	"os"
)

// DefaultURL is the FireCloud development API.
const DefaultURL = "https://firecloud.dsde-dev.broadinstitute.org/service/api"

// DefaultEditor is used when EDITOR is unset.
const DefaultEditor = "vim"

// Config is built once at startup from the global flags and the
// environment, then handed to every command.
type Config struct {
	BaseURL  string
	Insecure bool
	Endpoint Endpoint
	Editor   string
	LogLevel slog.Level
}

// New assembles a Config. The editor comes from getenv("EDITOR"), falling
// back to DefaultEditor. A nil getenv means os.Getenv.
func New(baseURL string, insecure bool, endpoint Endpoint, verbose bool, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	editor := getenv("EDITOR")
	if editor == "" {
		editor = DefaultEditor
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return Config{
		BaseURL:  baseURL,
		Insecure: insecure,
		Endpoint: endpoint,
		Editor:   editor,
		LogLevel: level,
	}
}
