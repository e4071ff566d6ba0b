package config

// Config holds all configuration for the application.
type Config struct {
	// ClubID is the club whose teams the tracker follows.
	ClubID string `yaml:"club_id"`
	// ManagerID is the federation manager that owns the club's tournaments.
	ManagerID string `yaml:"manager_id"`

	APIBaseURL    string `yaml:"api_base_url"`
	ClupikBaseURL string `yaml:"clupik_base_url"`

	// DataDir holds the season, tournament and roster caches.
	DataDir string `yaml:"data_dir"`
	// OutputDir is where the generated site is written.
	OutputDir string `yaml:"output_dir"`
}
