package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL    = "https://api.leverade.com"
	defaultClupikBaseURL = "https://clupik.pro"
	defaultDataDir       = "_data/seasons"
	defaultOutputDir     = "_site"
)

// Load reads configuration from a YAML file, the environment and a .env
// file, in increasing order of precedence. It fails hard when the club or
// manager ID is missing; nothing can run without them.
func Load(path string) Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg := Config{
		APIBaseURL:    defaultAPIBaseURL,
		ClupikBaseURL: defaultClupikBaseURL,
		DataDir:       defaultDataDir,
		OutputDir:     defaultOutputDir,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info("No config file found, reading from environment variables", "path", path)
	case err != nil:
		log.Fatalf("Error: could not read config file %s: %v", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error: could not parse config file %s: %v", path, err)
		}
	}

	overrideEnv := func(key string, dst *string) {
		if value, ok := os.LookupEnv(key); ok {
			*dst = value
		}
	}
	overrideEnv("CLUB_ID", &cfg.ClubID)
	overrideEnv("MANAGER_ID", &cfg.ManagerID)
	overrideEnv("API_BASE_URL", &cfg.APIBaseURL)
	overrideEnv("CLUPIK_BASE_URL", &cfg.ClupikBaseURL)
	overrideEnv("DATA_DIR", &cfg.DataDir)
	overrideEnv("OUTPUT_DIR", &cfg.OutputDir)

	if cfg.ClubID == "" {
		log.Fatalf("Error: club_id is not set (config file or CLUB_ID).")
	}
	if cfg.ManagerID == "" {
		log.Fatalf("Error: manager_id is not set (config file or MANAGER_ID).")
	}
	return cfg
}
