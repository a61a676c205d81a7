// Package config handles loading and validation of gitcache configuration.
//
// Configuration is read from ~/.config/gitcache/config.toml with an
// environment variable override for the cache root.
//
// # Configuration Sources (highest priority first)
//
//   - GITCACHE_DIR env var: root directory holding the shared caches
//   - Config file cache_dir setting
//   - Default value (~/.gitcache)
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
