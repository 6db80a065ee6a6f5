package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/spending-api/internal/redact"
)

// Environment variable names read by this package.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables
	EnvDatabaseURL     = "DATABASE_URL"
	EnvSpendTestDBURL  = "SPEND_TEST_DB_URL"
	EnvRequireDatabase = "SPEND_REQUIRE_TEST_DB"
)

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If none is set, it returns defaultValue.
// A warning is logged when a variable other than the first is used.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("Using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val),
				)
			}
			return val
		}
	}
	return defaultValue
}

// MaskSensitiveValue masks credentials in values such as database URLs so
// they can be logged.
func MaskSensitiveValue(value string) string {
	return redact.String(value)
}

// GetTestDatabaseURL returns the PostgreSQL URL for integration tests, checking
// DATABASE_URL and SPEND_TEST_DB_URL in that order.
// It returns an empty string if none is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvDatabaseURL, EnvSpendTestDBURL}, "", logger)
}

// RequireTestDatabase reports whether integration tests must fail, rather
// than skip, when no database URL is configured. It is true when
// SPEND_REQUIRE_TEST_DB is set.
func RequireTestDatabase() bool {
	return os.Getenv(EnvRequireDatabase) != ""
}
