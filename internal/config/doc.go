// Package config loads application configuration from environment variables.
//
// Every setting has a development-friendly default so the server starts with
// no environment at all; Validate() is stricter in production (signing keys
// become mandatory).
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // one joined error listing every failure
//	}
package config
