package config

// Config holds the curator configuration.
type Config struct {
	// DataDir is where the SQLite database lives.
	DataDir string `koanf:"data_dir" yaml:"data_dir"`

	// Bundle is the path to the shipped content bundle JSON.
	Bundle string `koanf:"bundle" yaml:"bundle"`

	// Port is the HTTP listen port.
	Port int `koanf:"port" yaml:"port"`

	// AdminPassword unlocks curator mode.
	AdminPassword string `koanf:"admin_password" yaml:"admin_password"`

	// AllowAllOrigins relaxes CORS for development.
	AllowAllOrigins bool `koanf:"allow_all_origins" yaml:"allow_all_origins"`

	// GalleryDir is an optional photo directory to scan into the gallery.
	GalleryDir string `koanf:"gallery_dir" yaml:"gallery_dir"`

	// GalleryPatterns are the glob patterns the gallery scan accepts.
	GalleryPatterns []string `koanf:"gallery_patterns" yaml:"gallery_patterns"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:         ".curator",
		Bundle:          "data/bundle.json",
		Port:            8700,
		GalleryPatterns: []string{"**/*.jpg", "**/*.jpeg", "**/*.png", "**/*.webp"},
	}
}
