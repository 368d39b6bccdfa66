// Package config provides environment-variable helpers and per-concern
// configuration structs with defaults. Each config struct can be populated
// manually or loaded via its New…FromEnv() convenience constructor.
package config
