// Package config provides configuration structures and utilities for llscan.
// It defines the scan reporter and histogram extractor options, their
// defaults, validation, and the optional .llscan YAML file.
package config
