// Package config provides the configuration of a crawl: defaults, the
// optional YAML config file and validation.
package config
