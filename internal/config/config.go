package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the coursework service.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	DataDir               string
	LogLevel              string
	RecentSubmissionLimit int
	SeedSampleData        bool
	SeedActor             string
}

// HTTPAddress returns the address the operational HTTP server listens on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AssignmentsFile returns the path of the assignments document.
func (c Config) AssignmentsFile() string {
	return filepath.Join(c.DataDir, "assignments.json")
}

// SubmissionsFile returns the path of the submissions document.
func (c Config) SubmissionsFile() string {
	return filepath.Join(c.DataDir, "submissions.json")
}

// ActivitiesFile returns the path of the activity log document.
func (c Config) ActivitiesFile() string {
	return filepath.Join(c.DataDir, "activities.json")
}

// Load reads configuration values from environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("COURSEWORK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Coursework API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("data.dir", "data")
	v.SetDefault("log.level", "info")
	v.SetDefault("stats.recent_limit", 5)
	v.SetDefault("seed.sample_data", false)
	v.SetDefault("seed.actor", "admin")

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		DataDir:               v.GetString("data.dir"),
		LogLevel:              strings.ToLower(v.GetString("log.level")),
		RecentSubmissionLimit: v.GetInt("stats.recent_limit"),
		SeedSampleData:        v.GetBool("seed.sample_data"),
		SeedActor:             v.GetString("seed.actor"),
	}

	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("data directory must be provided")
	}

	if cfg.RecentSubmissionLimit <= 0 {
		cfg.RecentSubmissionLimit = 5
	}

	return cfg, nil
}
