package sim

import "fmt"

// DistributionKind names a Distribution variant selectable from
// Config (spec.md §6).
type DistributionKind string

const (
	DistConstant    DistributionKind = "constant"
	DistExponential DistributionKind = "exponential"
)

// SourceConfig describes one Source: its diagnostic id, arrival
// distribution kind, and that distribution's parameter (the inter-event
// interval for Constant, the rate for Exponential).
type SourceConfig struct {
	ID               int              `yaml:"id"`
	DistributionKind DistributionKind `yaml:"distribution_kind"`
	Parameter        float64          `yaml:"parameter"`
}

// ServerConfig describes one Server: its diagnostic id, service
// distribution kind, and that distribution's parameter.
type ServerConfig struct {
	ID               int              `yaml:"id"`
	DistributionKind DistributionKind `yaml:"distribution_kind"`
	Parameter        float64          `yaml:"parameter"`
}

// Config is the Kernel's construction-time input (spec.md §6).
type Config struct {
	BufferCapacity int            `yaml:"buffer_capacity"`
	MaxArrivals    int            `yaml:"max_arrivals"`
	MaxTime        float64        `yaml:"max_time"`
	Seed           int64          `yaml:"seed"`
	Sources        []SourceConfig `yaml:"sources"`
	Servers        []ServerConfig `yaml:"servers"`
}

// DefaultMaxTime is used when Config.MaxTime is left at its zero value;
// spec.md §6 specifies "very large" as the default.
const DefaultMaxTime = 1e18

// Validate checks the configuration-invalid error taxonomy from spec.md
// §7: empty sources/servers, non-positive parameter, zero capacity or
// cap, negative max_time. A zero max_time is accepted as "unset" and
// replaced by DefaultMaxTime (see effectiveMaxTime).
func (c *Config) Validate() error {
	if c.BufferCapacity <= 0 {
		return &ConfigError{Msg: "buffer_capacity must be positive"}
	}
	if c.MaxArrivals <= 0 {
		return &ConfigError{Msg: "max_arrivals must be positive"}
	}
	if c.MaxTime < 0 {
		return &ConfigError{Msg: "max_time must be nonnegative"}
	}
	if len(c.Sources) == 0 {
		return &ConfigError{Msg: "sources must be nonempty"}
	}
	if len(c.Servers) == 0 {
		return &ConfigError{Msg: "servers must be nonempty"}
	}
	for i, s := range c.Sources {
		if s.Parameter <= 0 {
			return &ConfigError{Msg: fmt.Sprintf("source[%d] parameter must be positive", i)}
		}
		if s.DistributionKind != DistConstant && s.DistributionKind != DistExponential {
			return &ConfigError{Msg: fmt.Sprintf("source[%d] has unknown distribution_kind %q", i, s.DistributionKind)}
		}
	}
	for i, s := range c.Servers {
		if s.Parameter <= 0 {
			return &ConfigError{Msg: fmt.Sprintf("server[%d] parameter must be positive", i)}
		}
		if s.DistributionKind != DistConstant && s.DistributionKind != DistExponential {
			return &ConfigError{Msg: fmt.Sprintf("server[%d] has unknown distribution_kind %q", i, s.DistributionKind)}
		}
	}
	return nil
}

// effectiveMaxTime returns MaxTime, substituting DefaultMaxTime when
// MaxTime is zero (the YAML-friendly "unset" sentinel).
func (c *Config) effectiveMaxTime() float64 {
	if c.MaxTime == 0 {
		return DefaultMaxTime
	}
	return c.MaxTime
}
