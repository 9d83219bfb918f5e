// Package config defines teamforge configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and TEAMFORGE_* environment variables on top.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ParticipantsFile is the CSV file holding registered participants.
	ParticipantsFile string `koanf:"participants_file"`

	// TeamsFile receives the formed teams.
	TeamsFile string `koanf:"teams_file"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// Seed fixes the shuffle and coin flips of a run. Zero means time-seeded.
	Seed int64 `koanf:"seed"`

	// ReturnUnclaimed hands people claimed by failed assembly tasks back to
	// their pools instead of dropping them.
	ReturnUnclaimed bool `koanf:"return_unclaimed"`

	// DefaultTeamSize is offered when the menu asks for a team size.
	DefaultTeamSize int `koanf:"default_team_size"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		ParticipantsFile: "data/participants.csv",
		TeamsFile:        "data/formed_teams.csv",
		DefaultTeamSize:  5,
	}
}
