package config

import (
	"github.com/kbukum/restdata/logger"
	"github.com/kbukum/restdata/rest"
)

// Config is the top-level configuration for an application embedding the
// REST data provider.
type Config struct {
	Provider rest.Config   `yaml:"provider" mapstructure:"provider"`
	Logging  logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Provider.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if err := c.Provider.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}
