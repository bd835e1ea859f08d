package tokengate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the account set a driver registers at startup.
// The core registry itself is configuration-free; this is a convenience for
// surrounding drivers (CLI, service handler, simulation loop) that read their
// account definitions from a YAML file.
type Config struct {
	// Accounts maps an account identifier to its bucket parameters.
	Accounts map[string]AccountPolicy `yaml:"accounts"`
}

// AccountPolicy defines the bucket parameters for one account.
type AccountPolicy struct {
	// Capacity is the maximum number of tokens (burst size)
	Capacity int64 `yaml:"capacity"`

	// RefillIntervalSeconds is the number of seconds required to
	// regenerate one token. Example: 10 = one request every 10 seconds
	// sustained, bursts up to Capacity.
	RefillIntervalSeconds int64 `yaml:"refill_interval_seconds"`
}

// LoadConfigFromFile loads configuration from a YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("%w: no accounts defined", ErrInvalidConfig)
	}

	for account, policy := range c.Accounts {
		if account == "" {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, ErrInvalidAccount)
		}
		if err := policy.Validate(); err != nil {
			return fmt.Errorf("%w: invalid policy for account %s: %v", ErrInvalidConfig, account, err)
		}
	}

	return nil
}

// Validate checks if an AccountPolicy is valid.
func (p *AccountPolicy) Validate() error {
	if p.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if p.RefillIntervalSeconds <= 0 {
		return ErrInvalidRefillInterval
	}
	return nil
}

// BuildRegistry creates a registry populated with a fresh, full bucket for
// every configured account.
func (c *Config) BuildRegistry() (*Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	registry := NewRegistry()
	for account, policy := range c.Accounts {
		if _, err := registry.RegisterNew(account, policy.Capacity, policy.RefillIntervalSeconds); err != nil {
			return nil, fmt.Errorf("failed to register account %s: %w", account, err)
		}
	}
	return registry, nil
}
