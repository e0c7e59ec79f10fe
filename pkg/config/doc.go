// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is read once per process (if present), then struct fields
// annotated with `env` tags are populated from the environment.
//
//	type MongoConfig struct {
//	    URL string `env:"MONGODB_URL,required"`
//	}
//
//	var cfg MongoConfig
//	config.MustLoad(&cfg)
package config
