// Package config manages stacker's repository-local configuration, stored
// as JSON in .git/.stacker_config.
package config
