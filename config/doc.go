// Package config loads service configuration from YAML files and the
// environment.
//
// Services embed ServiceConfig in their own config struct and load it with
// LoadConfig, which resolves config.yml and .env files from the standard
// locations, binds environment variables over the file values, and
// unmarshals the merged result:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
//
//	var cfg Config
//	if err := config.LoadConfig("hydrated", &cfg); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Environment variables address nested keys through underscores: SERVER_PORT
// overrides the server.port file value.
package config
