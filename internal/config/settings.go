package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/Veraticus/spamsift/internal/common"
)

// Default values for the application settings.
const (
	DefaultServerAddr = "127.0.0.1:8080"
	DefaultRateLimit  = 20.0
	DefaultBurst      = 40
	DefaultModelFile  = "svm_model.json"
	DefaultVecFile    = "tfidf_vectorizer.json"
)

// Settings holds the resolved application configuration.
type Settings struct {
	ModelPath      string
	VectorizerPath string
	RulesPath      string
	DatabasePath   string
	ServerAddr     string
	RateLimit      float64
	Burst          int
	BatchWorkers   int
	HistoryEnabled bool
}

// SetDefaults registers the default value of every settings key on v.
func SetDefaults(v *viper.Viper) {
	dataDir := DefaultDataDir()

	v.SetDefault("model.path", filepath.Join(dataDir, DefaultModelFile))
	v.SetDefault("vectorizer.path", filepath.Join(dataDir, DefaultVecFile))
	v.SetDefault("rules.path", "")
	v.SetDefault("database.path", filepath.Join(dataDir, "history.db"))
	v.SetDefault("history.enabled", true)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.rate_limit", DefaultRateLimit)
	v.SetDefault("server.burst", DefaultBurst)
	v.SetDefault("batch.workers", runtime.GOMAXPROCS(0))
}

// Load reads settings from v, expanding paths and validating values.
func Load(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		ModelPath:      ExpandPath(v.GetString("model.path")),
		VectorizerPath: ExpandPath(v.GetString("vectorizer.path")),
		RulesPath:      ExpandPath(v.GetString("rules.path")),
		DatabasePath:   ExpandPath(v.GetString("database.path")),
		HistoryEnabled: v.GetBool("history.enabled"),
		ServerAddr:     v.GetString("server.addr"),
		RateLimit:      v.GetFloat64("server.rate_limit"),
		Burst:          v.GetInt("server.burst"),
		BatchWorkers:   v.GetInt("batch.workers"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	switch {
	case s.HistoryEnabled && s.DatabasePath == "":
		return fmt.Errorf("%w: database.path is required when history is enabled", common.ErrInvalidConfig)
	case s.ServerAddr == "":
		return fmt.Errorf("%w: server.addr must not be empty", common.ErrInvalidConfig)
	case s.RateLimit < 0:
		return fmt.Errorf("%w: server.rate_limit must not be negative, got %v", common.ErrInvalidConfig, s.RateLimit)
	case s.RateLimit > 0 && s.Burst < 1:
		return fmt.Errorf("%w: server.burst must be at least 1, got %d", common.ErrInvalidConfig, s.Burst)
	case s.BatchWorkers < 1:
		return fmt.Errorf("%w: batch.workers must be at least 1, got %d", common.ErrInvalidConfig, s.BatchWorkers)
	}
	return nil
}

// DefaultDataDir returns the directory holding model artifacts and history.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "spamsift")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "spamsift")
}
