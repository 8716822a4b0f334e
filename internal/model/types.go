// Package model defines shared data structures.
package model

import "time"

// Config is the resolved application configuration: defaults, then the TOML
// file, then command-line flags.
type Config struct {
	Margin        int
	EscapeTimeout time.Duration
	FallbackText  string

	Provider    string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int

	// offline provider
	WordList  string
	Lang      string
	Sentences int
}
