package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	LogPath    string
	TUIMode    bool
	ListModels bool
	UILanguage string

	// Endpoint flags
	URL      string
	Provider string
	Model    string
	Timeout  time.Duration
	Breaker  bool

	// Translation flags
	Source string
	Target string
	Auto   bool

	// translate subcommand flags
	InputFile string
	OutputDir string
	Archive   bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Provider: "deepl",
		Source:   "AUTO",
		Target:   "EN",
		Auto:     true,
		Breaker:  true,
	}
}
