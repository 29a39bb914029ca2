// Package config loads configuration structs from environment variables
// using github.com/caarlos0/env/v11, with optional .env files read through
// github.com/joho/godotenv.
//
// A .env file in the working directory is loaded once per process if it
// exists. Additional files can be requested per call with WithEnvFiles,
// and WithPrefix namespaces a shared struct:
//
//	var cfg toast.Config
//	config.MustLoad(&cfg)
//
//	var admin httpserver.Config
//	err := config.Load(&admin, config.WithPrefix("ADMIN_"))
package config
