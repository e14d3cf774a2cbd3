package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Slack         SlackConfig
	ProjectID     string
	Scheduler     SchedulerConfig
	Rating        RatingConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// SchedulerConfig carries the per-deployment match generation defaults.
type SchedulerConfig struct {
	TeamSize   int
	CourtCount int
}

// RatingConfig carries the Elo parameters, explicit rather than hidden
// module constants so deployments (and tests) can vary them.
type RatingConfig struct {
	InitialRating int
	KFactor       float64
}
