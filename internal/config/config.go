// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Weights are the points per matching signal; see rank.Weights.
type Weights struct {
	Title       int `yaml:"title"`
	Description int `yaml:"description"`
	Location    int `yaml:"location"`
	Mode        int `yaml:"mode"`
	Experience  int `yaml:"experience"`
	Skills      int `yaml:"skills"`
	Recent      int `yaml:"recent"`
	Source      int `yaml:"source"`
}

func (w Weights) Total() int {
	return w.Title + w.Description + w.Location + w.Mode + w.Experience + w.Skills + w.Recent + w.Source
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Store struct {
		Backend        string `yaml:"backend"` // sqlite/redis/postgres
		SQLitePath     string `yaml:"sqlite_path"`
		RedisURL       string `yaml:"redis_url"`
		DatabaseURL    string `yaml:"database_url"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"store"`

	Dataset struct {
		Path string `yaml:"path"` // empty = embedded jobs
	} `yaml:"dataset"`

	Scoring struct {
		Weights     Weights `yaml:"weights"`
		RecentDays  int     `yaml:"recent_days"`
		BonusSource string  `yaml:"bonus_source"`
	} `yaml:"scoring"`

	Ranking struct {
		DefaultSort string `yaml:"default_sort"`
	} `yaml:"ranking"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."

	cfg.Store.Backend = BackendSQLite
	cfg.Store.SQLitePath = "jobnotify.db"

	cfg.Scoring.Weights = Weights{
		Title:       25,
		Description: 15,
		Location:    15,
		Mode:        10,
		Experience:  10,
		Skills:      15,
		Recent:      5,
		Source:      5,
	}
	cfg.Scoring.RecentDays = 2
	cfg.Scoring.BonusSource = "LinkedIn"

	cfg.Ranking.DefaultSort = "latest"
	return cfg
}

// Load reads path on top of Default, so keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
