package storage

type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Seed struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"seed"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.Path = "./resepbunda.db"
	cfg.Seed.Enabled = true
	return cfg
}
