package config

import "os"

// Environment selects runtime behavior such as gin's mode and which
// configuration values must be set explicitly.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the environment from the process environment.
// CI=true wins over ENV; an unset or unknown ENV means development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}
