// Package config loads typed configuration from environment variables and
// optional .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - the default .env file in the working directory is read once, lazily;
//   - additional files can be read with LoadEnv before the first Load;
//   - env tags are parsed into any struct, optionally under a prefix;
//   - each (type, prefix) pair is parsed once and cached for the process.
//
// # Usage
//
//	type PollConfig struct {
//		Interval time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
//	}
//
//	var cfg PollConfig
//	if err := config.Load(&cfg, config.WithPrefix("MINTSHELL_")); err != nil {
//		return err
//	}
//
// ResetCache drops cached values, which tests use to reload after t.Setenv.
package config
