// Package config loads application settings from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for dotenv files. Parse assembles the environment
// (process variables, optional dotenv files, optional prefix) and returns a
// fresh value. Load does the same once per configuration type and caches the
// result for the lifetime of the process.
//
// # Usage
//
//	var settings validation.Settings
//	if err := config.Load(&settings, config.WithEnvFile(".env")); err != nil {
//		return err
//	}
//
// Process variables always win over dotenv values, so deployments can
// override a committed .env file.
//
// # Error Handling
//
// Failures are wrapped with ErrParsingConfig or ErrReadingEnvFile and can be
// checked with errors.Is. Load returns ErrNilPointer for a nil destination.
package config
