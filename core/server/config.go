package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080" validate:"required,numeric"`
	// BodyLimitMB caps request bodies; offline batches can be large.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16" validate:"min=1"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `mapstructure:"environment" default:"development"`
}

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
