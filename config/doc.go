// Package config loads library settings and application credentials from
// the environment, with optional .env file support for local development.
package config
