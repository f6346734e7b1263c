package rest

import (
	"fmt"

	"github.com/kbukum/restdata/httpclient"
)

const defaultBatchConcurrency = 4

// Config configures the REST data provider.
type Config struct {
	// Name identifies the provider in logs and middleware. Defaults to "rest".
	Name string `yaml:"name" mapstructure:"name"`

	// HTTP configures the underlying transport adapter.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`

	// TotalCountHeader is the response header carrying the total record
	// count for list requests. Defaults to "X-Total-Count".
	TotalCountHeader string `yaml:"total_count_header" mapstructure:"total_count_header"`

	// BatchConcurrency caps the number of in-flight requests a batched
	// operation issues at once. Defaults to 4.
	BatchConcurrency int `yaml:"batch_concurrency" mapstructure:"batch_concurrency"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "rest"
	}
	if c.TotalCountHeader == "" {
		c.TotalCountHeader = "X-Total-Count"
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = defaultBatchConcurrency
	}
	c.HTTP.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("rest: batch_concurrency must be positive")
	}
	return c.HTTP.Validate()
}
