// Package config manages user-level settings stored at ~/.backfill/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default host version used when planning catalogs.
package config
