package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "vending"

type Config struct {
	DataDir      string `envconfig:"data_dir" default:"."`
	ProductsFile string `envconfig:"products_file" default:"products.json"`
	CouponsFile  string `envconfig:"coupons_file" default:"coupons.json"`
	CardsFile    string `envconfig:"cards_file" default:"cards.json"`
	MaxAttempts  int    `envconfig:"max_attempts" default:"3"`
	LogFile      string `envconfig:"log_file" default:"vendingmachine.log"`
	LogLevel     string `envconfig:"log_level" default:"info"`
	NoColor      bool   `envconfig:"no_color" default:"false"`
}

// Load reads the VENDING_* environment variables.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	if c.MaxAttempts < 1 {
		return nil, errors.Errorf("max attempts must be positive, got %d", c.MaxAttempts)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	return c, nil
}

func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
